package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/yourorg/housemap-api/internal/config"
	"github.com/yourorg/housemap-api/internal/events"
	"github.com/yourorg/housemap-api/internal/geocode"
	"github.com/yourorg/housemap-api/internal/listing"
	"github.com/yourorg/housemap-api/internal/logger"
	"github.com/yourorg/housemap-api/internal/mapengine/gmaps"
	"github.com/yourorg/housemap-api/internal/pipeline"
	"github.com/yourorg/housemap-api/internal/report"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)

	geoClient := geocode.NewClient(cfg.MapsAPIKey,
		geocode.WithBaseURL(cfg.GeocodeBaseURL),
		geocode.WithMinInterval(cfg.GeocodeMinInterval),
	)
	resolver := geocode.NewResolver(geoClient, log)

	engine := gmaps.New(cfg.MapsAPIKey, gmaps.WithSDKBaseURL(cfg.SDKBaseURL))
	pub := events.NewInMemory(0)

	renderer := pipeline.NewRenderer(pipeline.Deps{
		Resolver: resolver,
		Engine:   engine,
		Pub:      pub,
		Log:      log,
	})
	runner := pipeline.NewRunner(renderer, func(context.Context) ([]listing.House, error) {
		return listing.Load(cfg.ListingsPath)
	}, log)

	go report.New(pub, log).Run(context.Background())

	// Kick off the first pass so the page has markers by the time it loads.
	runner.Enqueue()

	router := BuildRouter(renderer, runner, engine)
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("housemap-api listening", "addr", addr)
	if err := http.ListenAndServe(addr, logger.Middleware(log, router)); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
