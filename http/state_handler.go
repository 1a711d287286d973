package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/yourorg/housemap-api/internal/pipeline"
)

type StateDeps struct {
	Pipeline *pipeline.Renderer
}

// RegisterState exposes the presentation surface: loading flag, fatal
// message, skip list, success count and current map type.
func RegisterState(r chi.Router, d StateDeps) {
	r.Get("/api/state", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]any{
			"ok":    true,
			"state": d.Pipeline.State(),
		})
	})
}
