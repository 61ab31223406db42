package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// dotEnvFile is read before the environment overlay when present.
var dotEnvFile = ".env"

// loadDotEnv copies variables from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// parseEnv overlays cfg with ST_* environment variables. Unset variables
// leave the field untouched. It panics on malformed values.
func parseEnv(cfg *Config) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		panic(err)
	}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
