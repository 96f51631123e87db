package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig
	Data    DataConfig
	Logging LoggingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port              int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout       time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOriginsCSV string        `env:"SERVER_ALLOWED_ORIGINS"`
}

// DataConfig locates the source tables and bounds derived views.
type DataConfig struct {
	Dir                    string `env:"DATA_DIR" envDefault:"data"`
	RecentTransactionLimit int    `env:"RECENT_TX_LIMIT" envDefault:"100"`
	BulkWorkers            int    `env:"BULK_WORKERS" envDefault:"4"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text|json
}

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return Config{}, fmt.Errorf("port %d is out of range", cfg.HTTP.Port)
	}
	if cfg.Data.Dir == "" {
		return Config{}, fmt.Errorf("DATA_DIR must not be empty")
	}
	if cfg.Data.RecentTransactionLimit <= 0 {
		return Config{}, fmt.Errorf("RECENT_TX_LIMIT must be positive, got %d", cfg.Data.RecentTransactionLimit)
	}

	return cfg, nil
}
