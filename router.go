package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	httpapi "github.com/yourorg/housemap-api/http"
	"github.com/yourorg/housemap-api/internal/mapengine/gmaps"
	"github.com/yourorg/housemap-api/internal/pipeline"
)

func BuildRouter(renderer *pipeline.Renderer, runner *pipeline.Runner, engine *gmaps.Engine) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(100, 1*time.Minute)) // protect upstream quota
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterPage(r, httpapi.PageDeps{Pipeline: renderer, Engine: engine})

	r.Group(func(api chi.Router) {
		api.Use(render.SetContentType(render.ContentTypeJSON))
		httpapi.RegisterState(api, httpapi.StateDeps{Pipeline: renderer})
		httpapi.RegisterRender(api, httpapi.RenderDeps{Runner: runner})
		httpapi.RegisterMapType(api, httpapi.MapTypeDeps{Pipeline: renderer})
	})

	return r
}
