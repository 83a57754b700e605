// Package config loads process configuration from the environment (with an
// optional .env file) and engine tuning from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the process settings. Every field maps to a PETCORE_*
// variable.
type Config struct {
	StoreKind         string        `env:"STORE" envDefault:"file"`
	StorePath         string        `env:"STORE_PATH" envDefault:"petcore.json"`
	StoreSaveInterval time.Duration `env:"STORE_SAVE_INTERVAL" envDefault:"2s"` // file store autosave
	RedisAddr         string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPrefix       string        `env:"REDIS_PREFIX" envDefault:"petcore"`
	LogFile           string        `env:"LOG_FILE" envDefault:"petcore.log"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	ContentDir        string        `env:"CONTENT_DIR"` // empty uses the embedded pack
	TuningFile        string        `env:"TUNING_FILE"` // empty uses the embedded defaults
	Seed              int64         `env:"SEED"`        // 0 seeds from the clock
	Plain             bool          `env:"PLAIN"`
}

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "PETCORE_"

// Load reads dotenv (if present, without overriding variables already set)
// and parses the environment.
func Load(dotenv string) (*Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", dotenv, err)
		}
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
