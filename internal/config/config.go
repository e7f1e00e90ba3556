// Package config reads beloved's settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"

	"github.com/roach88/beloved/internal/slot"
)

// Environment variable names.
const (
	EnvDB          = "BELOVED_DB"
	EnvBackend     = "BELOVED_BACKEND"
	EnvLogLevel    = "BELOVED_LOG_LEVEL"
	EnvEnvironment = "BELOVED_ENV"
	EnvCatalog     = "BELOVED_CATALOG"
)

// DefaultDir is the data directory under the user's home.
const DefaultDir = ".beloved"

// AppConfig holds all configuration for the application.
type AppConfig struct {
	// DBPath is the sqlite file or badger directory.
	DBPath string
	// Backend is one of slot.Backends.
	Backend     string
	LogLevel    string
	Environment string
	// CatalogPath overrides the embedded flavor-text catalog when set.
	CatalogPath string
}

// Load reads configuration from environment variables and the given .env
// files. With no files, ".env" in the working directory is tried. Missing
// files are ignored, and godotenv never overrides variables already set.
func Load(envFiles ...string) (*AppConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &AppConfig{}

	cfg.Backend = strings.ToLower(os.Getenv(EnvBackend))
	if cfg.Backend == "" {
		cfg.Backend = slot.BackendSQLite
	}
	if !slices.Contains(slot.Backends, cfg.Backend) {
		return nil, fmt.Errorf("invalid %s %q: must be one of %v", EnvBackend, cfg.Backend, slot.Backends)
	}

	cfg.DBPath = os.Getenv(EnvDB)
	if cfg.DBPath == "" {
		path, err := DefaultDBPath(cfg.Backend)
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}

	cfg.LogLevel = strings.ToLower(os.Getenv(EnvLogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	cfg.Environment = strings.ToLower(os.Getenv(EnvEnvironment))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.CatalogPath = os.Getenv(EnvCatalog)

	return cfg, nil
}

// DefaultDBPath returns the data location for backend under the user's home
// directory.
func DefaultDBPath(backend string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	switch backend {
	case slot.BackendBadger:
		return filepath.Join(home, DefaultDir, "badger"), nil
	default:
		return filepath.Join(home, DefaultDir, "beloved.db"), nil
	}
}

// EnsureDir creates the parent directory of a sqlite path, or the directory
// itself for badger.
func (c *AppConfig) EnsureDir() error {
	dir := filepath.Dir(c.DBPath)
	if c.Backend == slot.BackendBadger {
		dir = c.DBPath
	}
	if c.Backend == slot.BackendMemory {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return nil
}

// Override applies command-line values on top of the loaded configuration.
// Empty arguments leave the field alone. Changing the backend without a
// path moves DBPath to that backend's default unless BELOVED_DB is set.
func (c *AppConfig) Override(backend, dbPath string) error {
	if backend != "" {
		backend = strings.ToLower(backend)
		if !slices.Contains(slot.Backends, backend) {
			return fmt.Errorf("invalid backend %q: must be one of %v", backend, slot.Backends)
		}
		if backend != c.Backend && dbPath == "" && os.Getenv(EnvDB) == "" {
			path, err := DefaultDBPath(backend)
			if err != nil {
				return err
			}
			c.DBPath = path
		}
		c.Backend = backend
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	return nil
}
