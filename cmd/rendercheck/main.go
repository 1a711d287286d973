// rendercheck runs one headless rendering pass over a listings file and
// prints the outcome, for auditing data quality without a browser or a
// maps credential. Geocoding still goes to the real service when
// GEOCODE_BASE_URL is not overridden.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/yourorg/housemap-api/internal/env"
	"github.com/yourorg/housemap-api/internal/geocode"
	"github.com/yourorg/housemap-api/internal/listing"
	"github.com/yourorg/housemap-api/internal/logger"
	"github.com/yourorg/housemap-api/internal/mapengine"
	"github.com/yourorg/housemap-api/internal/pipeline"
)

func main() {
	_ = godotenv.Load()
	log := logger.New(env.Get("ENV", "development"))

	path := env.Get("LISTINGS_PATH", "./data/houses.json")
	houses, err := listing.Load(path)
	if err != nil {
		log.Error("failed to load listings", "path", path, "error", err)
		os.Exit(1)
	}
	log.Info("listings loaded", "path", path, "count", len(houses))

	client := geocode.NewClient(env.Get("MAPS_API_KEY", ""),
		geocode.WithBaseURL(env.Get("GEOCODE_BASE_URL", "")),
		geocode.WithMinInterval(env.GetDuration("GEOCODE_MIN_INTERVAL", time.Second)),
	)
	renderer := pipeline.NewRenderer(pipeline.Deps{
		Resolver: geocode.NewResolver(client, log),
		Engine:   mapengine.Headless(),
		Log:      log,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := renderer.Run(ctx, houses)
	if err != nil {
		log.Error("render pass aborted", "error", err)
		os.Exit(1)
	}

	fmt.Printf("placed:  %d\n", result.SuccessCount)
	fmt.Printf("skipped: %d\n", len(result.Skipped))
	for _, rec := range result.Skipped {
		fmt.Printf("  %-12s %-12s %s\n", rec.ID, rec.Reason, rec.Address)
	}

	if len(result.Skipped) > 0 {
		log.Warn("pass finished with skips", "placed", result.SuccessCount, "skipped", len(result.Skipped))
		return
	}
	log.Info("pass finished clean", "placed", result.SuccessCount)
}
