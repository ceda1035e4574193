// Package config loads server settings from the environment. A .env
// file in the working directory is honored when present so local runs
// don't need exported variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDBPath    = "PRDPILOT_DB_PATH"
	EnvCacheSize = "PRDPILOT_CACHE_SIZE"
)

const defaultCacheSize = 64

// Settings holds everything the server needs at startup.
type Settings struct {
	// DBPath is the SQLite session database location.
	DBPath string
	// CacheSize bounds the in-memory session state cache.
	CacheSize int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	home, _ := os.UserHomeDir()
	return Settings{
		DBPath:    filepath.Join(home, ".prdpilot", "sessions.db"),
		CacheSize: defaultCacheSize,
	}
}

// Load reads settings from a .env file (if present) and the process
// environment, falling back to defaults. A malformed numeric value is a
// configuration error and fails startup.
func Load() (Settings, error) {
	// Best-effort: absence of a .env file is the normal case.
	_ = godotenv.Load()

	s := DefaultSettings()

	if v := os.Getenv(EnvDBPath); v != "" {
		s.DBPath = v
	}
	if v := os.Getenv(EnvCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Settings{}, fmt.Errorf("config: %s: %w", EnvCacheSize, err)
		}
		if n <= 0 {
			return Settings{}, fmt.Errorf("config: %s must be positive, got %d", EnvCacheSize, n)
		}
		s.CacheSize = n
	}

	return s, nil
}
