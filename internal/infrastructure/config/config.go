package config

import (
	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Metrics are written in Prometheus text format when set.
	MetricsFile string `env:"METRICS_FILE" envDefault:""`

	// Processing
	VerifyLedger  bool `env:"VERIFY_LEDGER"  envDefault:"false"`
	ProgressEvery int  `env:"PROGRESS_EVERY" envDefault:"100000"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
