package pagination

import (
	"fmt"
	"os"
	"strconv"
)

// PageSizeLimit bounds MaxPageSize so a single request cannot render the
// whole catalog.
const PageSizeLimit = 500

// Config holds page size limits. The defaults fit a card grid of four
// columns: three rows per page, twelve rows at most.
type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

// ConfigEnv maps environment variable names for pagination configuration.
type ConfigEnv struct {
	DefaultPageSize string
	MaxPageSize     string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 12
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 48
	}
	if env != nil {
		envInt(&c.DefaultPageSize, env.DefaultPageSize)
		envInt(&c.MaxPageSize, env.MaxPageSize)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultPageSize != 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}
	if overlay.MaxPageSize != 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

func (c *Config) validate() error {
	switch {
	case c.DefaultPageSize < 1:
		return fmt.Errorf("default_page_size must be positive")
	case c.MaxPageSize < 1 || c.MaxPageSize > PageSizeLimit:
		return fmt.Errorf("max_page_size must be between 1 and %d", PageSizeLimit)
	case c.DefaultPageSize > c.MaxPageSize:
		return fmt.Errorf("default_page_size cannot exceed max_page_size")
	}
	return nil
}

func envInt(dst *int, name string) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
