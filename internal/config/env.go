package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config captures the runtime configuration of the ingestion client.
type Config struct {
	// BackendURL is the base URL of the RAG backend's Flask API.
	BackendURL string `env:"BACKEND_URL" envDefault:"http://127.0.0.1:5000"`

	// SecretKey is injected as X-Secret-Key on every non-auth request.
	SecretKey string `env:"SECRET_KEY"`

	// UserID owns workspaces created through this client.
	UserID string `env:"USER_ID" envDefault:"default_user"`

	// HTTPTimeout bounds every backend call; the pipeline imposes no
	// per-stage deadline of its own.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"2m"`

	// URLDebounce is the quiet period before URL input is adapted.
	URLDebounce time.Duration `env:"URL_DEBOUNCE" envDefault:"800ms"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads .env (when present) and the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
