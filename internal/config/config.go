package config

import (
	"os"
	"time"

	"github.com/lukeringworm/dynameter-deploy/internal/model"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port          string
	AdminPassword string
	DatabaseURL   string
	RedisURL      string
	OpenAIKey     string
	AnthropicKey  string
	FrontendURL   string
	FetchInterval time.Duration
	ScoreGap      time.Duration
}

// Load reads the environment. Missing values fall back to defaults so the
// server can run with nothing but an admin password set.
func Load() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:  os.Getenv("ANTHROPIC_API_KEY"),
		FrontendURL:   os.Getenv("FRONTEND_URL"),
		FetchInterval: getduration("FETCH_INTERVAL", 15*time.Minute),
		ScoreGap:      getduration("SCORE_GAP", time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// DefaultFeeds maps each category to its RSS sources.
func DefaultFeeds() map[model.Category][]string {
	return map[model.Category][]string{
		model.Defense: {
			"https://breakingdefense.com/full-rss-feed/?v=2",
			"https://www.defensenews.com/arc/outboundfeeds/rss/?outputType=xml",
		},
		model.Manufacturing: {
			"https://www.manufacturingdive.com/feeds/news/",
		},
		model.Workforce: {
			"https://www.bls.gov/feed/empsit.rss",
			"https://www.laborrelationsupdate.com/feed/",
		},
		model.Energy: {
			"https://www.energylivenews.com/feed/",
		},
		model.TechPolicy: {
			"https://thehill.com/policy/technology/feed/",
		},
		model.SupplyChain: {
			"https://www.supplychaindive.com/feeds/news/",
		},
	}
}
