package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the process configuration. Values come from the yaml
// config file, with env var overrides for deployment.
type Config struct {
	AppPort          int    `yaml:"app_port"`
	MongoURL         string `yaml:"mongo_url"`
	DBName           string `yaml:"db_name"`
	HistoryPath      string `yaml:"history_path"`
	CacheSize        int    `yaml:"cache_size"`
	UserAgent        string `yaml:"user_agent"`
	FetchTimeoutSecs int    `yaml:"fetch_timeout_seconds"`
	MaxRetries       int    `yaml:"max_retries"`
	BackoffBaseSecs  int    `yaml:"backoff_base_seconds"`
}

// Default returns the production defaults.
func Default() *Config {
	return &Config{
		AppPort:          8080,
		MongoURL:         "mongodb://localhost:27017",
		DBName:           "neonsearch",
		HistoryPath:      "data/history.db",
		CacheSize:        100,
		UserAgent:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		FetchTimeoutSecs: 30,
		MaxRetries:       3,
		BackoffBaseSecs:  1,
	}
}

// FetchTimeout returns the per-request timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSecs) * time.Second
}

// BackoffBase returns the first retry delay as a duration.
func (c *Config) BackoffBase() time.Duration {
	return time.Duration(c.BackoffBaseSecs) * time.Second
}

// Load reads the config file named by CONFIG_PATH (default config.yaml)
// over the defaults, then applies env overrides. A missing file is not
// an error; the defaults stand.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if v := os.Getenv("APP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid APP_PORT %q: %w", v, err)
		}
		cfg.AppPort = port
	}
	if v := os.Getenv("MONGO_URL"); v != "" {
		cfg.MongoURL = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.DBName = v
	}
	if v := os.Getenv("HISTORY_PATH"); v != "" {
		cfg.HistoryPath = v
	}

	return cfg, nil
}
