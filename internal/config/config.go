// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration values for the travelmaster CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Home is the data directory. Defaults to ~/.travelmaster.
	Home string

	// DatabaseURL is either a SQLite file path or a postgres:// URL.
	// Defaults to <Home>/travelmaster.db.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// MetricsFile, when set, receives the operation counters in Prometheus
	// text format after every command.
	MetricsFile string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error when LOG_LEVEL is not a known level or the home directory
// cannot be determined.
func Load() (Config, error) {
	home := os.Getenv("TRAVELMASTER_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("config: resolve home directory (set TRAVELMASTER_HOME): %w", err)
		}
		home = filepath.Join(userHome, ".travelmaster")
	}

	cfg := Config{
		Home:        home,
		DatabaseURL: getEnv("DATABASE_URL", filepath.Join(home, "travelmaster.db")),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		MetricsFile: os.Getenv("METRICS_FILE"),
	}

	if _, err := cfg.SlogLevel(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SlogLevel converts LogLevel to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: invalid LOG_LEVEL %q (want debug, info, warn or error)", c.LogLevel)
	}
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
