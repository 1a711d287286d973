package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/yourorg/housemap-api/internal/mapengine"
	"github.com/yourorg/housemap-api/internal/pipeline"
)

type MapTypeDeps struct {
	Pipeline *pipeline.Renderer
}

// RegisterMapType switches the base map layer. Idempotent; markers are
// never re-placed.
func RegisterMapType(r chi.Router, d MapTypeDeps) {
	r.Put("/api/maptype", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			MapType string `json:"mapType"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}

		mt, err := mapengine.ParseMapType(body.MapType)
		if err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_maptype", "detail": err.Error()})
			return
		}

		d.Pipeline.SetMapType(mt)
		render.JSON(w, req, map[string]any{"ok": true, "mapType": mt})
	})
}
