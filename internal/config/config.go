// Package config loads the process configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/quranhub/quranhub/internal/store/postgres"
)

// Config is the resolved process configuration.
type Config struct {
	Database postgres.Config
	LogLevel string
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads a .env file when present, then the environment. Every value
// has a development default; nothing is required.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Database: postgres.Config{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			User:     env("DB_USERNAME", "postgres"),
			Password: env("DB_PASSWORD", ""),
			Database: env("DB_NAME", "quranhub"),
		},
		LogLevel: env("LOG_LEVEL", "info"),
	}
}
