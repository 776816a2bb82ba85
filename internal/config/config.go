// Package config reads runtime settings from NAJDENO_* environment
// variables, with an optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "najdeno"

type Config struct {
	App   AppConfig
	DB    DBConfig
	Sweep SweepConfig
}

type AppConfig struct {
	Addr     string `envconfig:"NAJDENO_ADDR" default:":8080"`
	LogLevel string `envconfig:"NAJDENO_LOG_LEVEL" default:"info"`
}

type DBConfig struct {
	Path string `envconfig:"NAJDENO_DB_PATH" default:"najdeno.db"`
}

type SweepConfig struct {
	Interval time.Duration `envconfig:"NAJDENO_SWEEP_INTERVAL" default:"1h"`
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
