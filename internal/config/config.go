package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/yourorg/housemap-api/internal/env"
)

// Config holds all application settings loaded from environment variables.
type Config struct {
	Env  string
	Port int

	// MapsAPIKey is intentionally not required at load time. An empty key
	// surfaces as a configuration error on the rendered page rather than
	// crashing the process.
	MapsAPIKey string

	ListingsPath string

	GeocodeBaseURL     string
	GeocodeMinInterval time.Duration

	SDKBaseURL string
}

// Load reads the .env file (if present) and returns a populated Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using system env vars")
	}

	return &Config{
		Env:  env.Get("ENV", "development"),
		Port: env.GetInt("PORT", 4003),

		MapsAPIKey: env.Get("MAPS_API_KEY", ""),

		ListingsPath: env.Get("LISTINGS_PATH", "./data/houses.json"),

		GeocodeBaseURL:     env.Get("GEOCODE_BASE_URL", ""),
		GeocodeMinInterval: env.GetDuration("GEOCODE_MIN_INTERVAL", time.Second),

		SDKBaseURL: env.Get("MAPS_SDK_BASE_URL", ""),
	}
}
