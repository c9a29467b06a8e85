// Package config reads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the matrix service.
type Config struct {
	Env  string
	Port string

	// Google Maps
	APIKey  string
	BaseURL string

	// Persistence
	Driver      string
	DBPath      string
	DatabaseURL string
	Persist     bool

	// Artifacts
	ArchiveDir     string
	ExportDir      string
	ArchiveLabel   string
	ArchiveReplies bool
	ExportMatrices bool
}

// Load reads configuration from environment variables with sensible defaults.
// The API key has no default and the driver must be one of the two known ones.
func Load() (*Config, error) {
	cfg := &Config{
		Env:  Get("APP_ENV", "development"),
		Port: Get("PORT", "8080"),

		APIKey:  strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		BaseURL: Get("GOOGLE_MAPS_BASE_URL", ""),

		Driver:      Get("DB_DRIVER", DriverSqlite),
		DBPath:      Get("DB_PATH", "data/matrix.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Persist:     GetBool("PERSIST_DISTANCES", true),

		ArchiveDir:     Get("ARCHIVE_DIR", "data/archive"),
		ExportDir:      Get("EXPORT_DIR", "data/matrices"),
		ArchiveLabel:   Get("ARTIFACT_LABEL", ""),
		ArchiveReplies: GetBool("ARCHIVE_RESPONSES", true),
		ExportMatrices: GetBool("EXPORT_MATRICES", true),
	}

	if cfg.APIKey == "" {
		return nil, errors.New("load config: GOOGLE_MAPS_API_KEY is required")
	}

	switch cfg.Driver {
	case DriverSqlite, DriverPostgres:
	default:
		return nil, fmt.Errorf("load config: unsupported DB_DRIVER %q", cfg.Driver)
	}
	if cfg.Persist && cfg.Driver == DriverPostgres && strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, errors.New("load config: DATABASE_URL is required for the postgres driver")
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetBool parses the environment value as a bool, falling back on
// unset or unparseable values.
func GetBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
