package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from AIRQ_-prefixed
// environment variables.
type Config struct {
	DataPath        string        `envconfig:"DATA_PATH" default:"data/AirQualityUCI.csv"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	CacheEnabled    bool          `envconfig:"CACHE_ENABLED" default:"true"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("airq", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if cfg.DataPath == "" {
		return nil, errors.New("AIRQ_DATA_PATH is required")
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid AIRQ_LOG_FORMAT %q (want json or text)", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid AIRQ_LOG_LEVEL %q", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("AIRQ_SHUTDOWN_TIMEOUT must be positive")
	}

	return &cfg, nil
}
