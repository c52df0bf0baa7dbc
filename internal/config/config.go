// Package config loads application configuration from the environment,
// with an optional .env file for development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the settings the embedding application wires the data
// layer with.
type Config struct {
	// DBPath is the SQLite database file path.
	DBPath string

	// LogLevel is the slog level name (debug, info, warn, error).
	LogLevel string
}

// Load reads configuration with precedence: explicit env var > .env
// file > default. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:   getEnv("IBRAPRO_DB_PATH", "./data/ibrapro.db"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
