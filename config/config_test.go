package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AppPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.AppPort)
	}
	if cfg.CacheSize != 100 {
		t.Errorf("expected default cache size 100, got %d", cfg.CacheSize)
	}
	if cfg.FetchTimeout() != 30*time.Second {
		t.Errorf("expected 30s fetch timeout, got %v", cfg.FetchTimeout())
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("app_port: 9090\ncache_size: 10\nfetch_timeout_seconds: 5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AppPort != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.AppPort)
	}
	if cfg.CacheSize != 10 {
		t.Errorf("expected cache size 10, got %d", cfg.CacheSize)
	}
	if cfg.FetchTimeout() != 5*time.Second {
		t.Errorf("expected 5s fetch timeout, got %v", cfg.FetchTimeout())
	}
	// Unset fields keep their defaults.
	if cfg.MaxRetries != 3 {
		t.Errorf("expected default max retries 3, got %d", cfg.MaxRetries)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("APP_PORT", "7070")
	t.Setenv("MONGO_URL", "mongodb://db:27017")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AppPort != 7070 {
		t.Errorf("expected env port 7070, got %d", cfg.AppPort)
	}
	if cfg.MongoURL != "mongodb://db:27017" {
		t.Errorf("expected env mongo url, got %q", cfg.MongoURL)
	}

	t.Setenv("APP_PORT", "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid APP_PORT")
	}
}
