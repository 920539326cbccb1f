package travelcms

import (
	"errors"
	"strings"
	"time"
)

// Storage drivers supported out of the box.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrBaseURLRequired      = errors.New("travelcms: base url is required")
	ErrStorageDriverUnknown = errors.New("travelcms: unknown storage driver")
)

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

// LoggingConfig mirrors the go-logger options the module exposes.
type LoggingConfig struct {
	Level     string   `json:"level"`
	Format    string   `json:"format"`
	AddSource bool     `json:"add_source"`
	Focus     []string `json:"focus,omitempty"`
}

// CacheConfig controls the repository read-through cache.
type CacheConfig struct {
	Enabled bool          `json:"enabled"`
	TTL     time.Duration `json:"ttl"`
}

// Config is the module configuration.
type Config struct {
	// BaseURL is the public site origin used for sitemaps and robots.
	BaseURL string `json:"base_url"`
	// MediaBaseURL roots the default static media resolver.
	MediaBaseURL string        `json:"media_base_url"`
	Storage      StorageConfig `json:"storage"`
	Logging      LoggingConfig `json:"logging"`
	Cache        CacheConfig   `json:"cache"`
}

// DefaultConfig returns a local development configuration backed by an
// in-memory SQLite database.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "http://localhost:8080",
		MediaBaseURL: "http://localhost:8080/media",
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DSN:    "file::memory:?cache=shared",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration before wiring.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return ErrBaseURLRequired
	}
	switch strings.ToLower(strings.TrimSpace(c.Storage.Driver)) {
	case "", DriverSQLite, DriverPostgres:
		return nil
	default:
		return ErrStorageDriverUnknown
	}
}
