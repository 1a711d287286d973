package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/yourorg/housemap-api/internal/pipeline"
)

type RenderDeps struct {
	Runner *pipeline.Runner
}

// RegisterRender queues a fresh rendering pass over the listings file.
func RegisterRender(r chi.Router, d RenderDeps) {
	r.Post("/api/render", func(w http.ResponseWriter, req *http.Request) {
		queued := d.Runner.Enqueue()
		render.Status(req, http.StatusAccepted)
		render.JSON(w, req, map[string]any{
			"ok":     true,
			"queued": queued,
		})
	})
}
