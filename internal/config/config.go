// Package config loads server configuration from a TOML file.
//
// Everything has a sensible default: a missing config file yields a working
// single-instance server with in-memory sessions and a local "uploads"
// directory. CLI flags override whatever the file says.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `toml:"listen"`

	// StorageDir is the managed storage root for uploads and exports.
	StorageDir string `toml:"storage_dir"`

	// MaxUploadBytes caps the upload request body.
	MaxUploadBytes int64 `toml:"max_upload_bytes"`

	Session SessionConfig `toml:"session"`
}

// SessionConfig selects and configures the session backend.
type SessionConfig struct {
	// Backend is one of "memory", "redis", "mongo".
	Backend string `toml:"backend"`

	// TTLHours is the session lifetime in hours.
	TTLHours int `toml:"ttl_hours"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig holds Redis backend settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig holds MongoDB backend settings.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:         ":8080",
		StorageDir:     "uploads",
		MaxUploadBytes: 16 << 20, // 16 MiB, the platform request ceiling
		Session: SessionConfig{
			Backend:  "memory",
			TTLHours: 24,
			Redis:    RedisConfig{Addr: "localhost:6379"},
			Mongo:    MongoConfig{URI: "mongodb://localhost:27017"},
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Session.Backend {
	case "memory", "redis", "mongo":
	default:
		return fmt.Errorf("unknown session backend %q (must be memory, redis, or mongo)", c.Session.Backend)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}
	return nil
}

// SessionTTL returns the configured session lifetime.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}
