// Package config loads the gallery service configuration from config.toml,
// an optional environment overlay, and GALLERY_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/database"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvGalleryEnv             = "GALLERY_ENV"
	EnvGalleryShutdownTimeout = "GALLERY_SHUTDOWN_TIMEOUT"
	EnvGalleryVersion         = "GALLERY_VERSION"
)

var databaseEnv = &database.Env{
	URL:             "GALLERY_DB_URL",
	Host:            "GALLERY_DB_HOST",
	Port:            "GALLERY_DB_PORT",
	Name:            "GALLERY_DB_NAME",
	User:            "GALLERY_DB_USER",
	Password:        "GALLERY_DB_PASSWORD",
	SSLMode:         "GALLERY_DB_SSL_MODE",
	MaxOpenConns:    "GALLERY_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "GALLERY_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "GALLERY_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "GALLERY_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "GALLERY_STORAGE_CONTAINER_NAME",
	ConnectionString: "GALLERY_STORAGE_CONNECTION_STRING",
	AccountURL:       "GALLERY_STORAGE_ACCOUNT_URL",
}

// Config is the root configuration for the gallery service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Logging         LoggingConfig   `toml:"logging"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Cache           CacheConfig     `toml:"cache"`
	Catalog         CatalogConfig   `toml:"catalog"`
	Auth            AuthConfig      `toml:"auth"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the GALLERY_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvGalleryEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Cache.Merge(&overlay.Cache)
	c.Catalog.Merge(&overlay.Catalog)
	c.Auth.Merge(&overlay.Auth)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Cache.Finalize(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Catalog.Finalize(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := c.Auth.Finalize(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvGalleryShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvGalleryVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvGalleryEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
