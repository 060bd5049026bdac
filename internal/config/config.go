// ABOUTME: Environment-driven configuration for the mariposa server.
// ABOUTME: XDG-aware data directory default, port and environment knobs.

package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	Port        string
	DataDir     string
	Environment string // dev | production
}

// Load reads configuration from the environment. Callers load .env
// beforehand (godotenv) so local overrides apply.
func Load() *Config {
	return &Config{
		Port:        getEnv("MARIPOSA_PORT", "3020"),
		DataDir:     getEnv("MARIPOSA_DATA_DIR", DefaultDataDir()),
		Environment: getEnv("MARIPOSA_ENV", "dev"),
	}
}

// DefaultDataDir resolves the XDG data home for mariposa.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mariposa")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
