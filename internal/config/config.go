package config

import (
	"os"
	"strings"
	"time"
)

type CourierConfig struct {
	Name       string
	URL        string
	Credential string
}

type Config struct {
	Port            string
	UpstreamTimeout time.Duration

	// Upstream endpoints
	CatalogURL  string
	QuoteAPIURL string
	Couriers    []CourierConfig

	// Optional broker; empty disables event publishing
	RabbitURL string
}

func Load() Config {
	port := getenv("PORT", "8080")
	timeout := parseDuration(getenv("UPSTREAM_TIMEOUT", "10s"), 10*time.Second)

	cfg := Config{
		Port:            port,
		UpstreamTimeout: timeout,

		CatalogURL: getenv("CATALOG_URL", "https://dummyjson.com"),
		// The service quotes against its own /api/cart by default.
		QuoteAPIURL: getenv("QUOTE_API_URL", "http://localhost:"+port),

		Couriers: []CourierConfig{
			{
				Name:       "TraeloYa",
				URL:        getenv("TRAELOYA_URL", "https://recruitment.weflapp.com/tarifier/traelo_ya"),
				Credential: os.Getenv("TRAELOYA_CREDENTIAL"),
			},
			{
				Name:       "Uder",
				URL:        getenv("UDER_URL", "https://recruitment.weflapp.com/tarifier/uder"),
				Credential: os.Getenv("UDER_CREDENTIAL"),
			},
		},

		RabbitURL: os.Getenv("RABBITMQ_URL"),
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
