package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BackendURL != "http://127.0.0.1:5000" {
		t.Fatalf("unexpected default backend url %q", cfg.BackendURL)
	}
	if cfg.HTTPTimeout != 2*time.Minute {
		t.Fatalf("unexpected default timeout %v", cfg.HTTPTimeout)
	}
	if cfg.URLDebounce != 800*time.Millisecond {
		t.Fatalf("unexpected default debounce %v", cfg.URLDebounce)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://rag.internal:8443")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("HTTP_TIMEOUT", "30s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BackendURL != "https://rag.internal:8443" {
		t.Fatalf("backend url not read from environment, got %q", cfg.BackendURL)
	}
	if cfg.SecretKey != "s3cret" {
		t.Fatalf("secret key not read, got %q", cfg.SecretKey)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("timeout not read, got %v", cfg.HTTPTimeout)
	}
}
