package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvCacheAddr      = "GALLERY_REDIS_ADDR"
	EnvCachePassword  = "GALLERY_REDIS_PASSWORD"
	EnvCacheDB        = "GALLERY_REDIS_DB"
	EnvCacheKeyPrefix = "GALLERY_REDIS_KEY_PREFIX"
)

// CacheConfig points at the redis instance that holds session
// revocations. With no Addr, revocations stay in process memory.
type CacheConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// Enabled reports whether redis is configured.
func (c *CacheConfig) Enabled() bool {
	return c.Addr != ""
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CacheConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *CacheConfig) Merge(overlay *CacheConfig) {
	if overlay.Addr != "" {
		c.Addr = overlay.Addr
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.DB != 0 {
		c.DB = overlay.DB
	}
	if overlay.KeyPrefix != "" {
		c.KeyPrefix = overlay.KeyPrefix
	}
}

func (c *CacheConfig) loadDefaults() {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "gallery:"
	}
}

func (c *CacheConfig) loadEnv() {
	if v := os.Getenv(EnvCacheAddr); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(EnvCachePassword); v != "" {
		c.Password = v
	}
	if v := os.Getenv(EnvCacheDB); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.DB = db
		}
	}
	if v := os.Getenv(EnvCacheKeyPrefix); v != "" {
		c.KeyPrefix = v
	}
}

func (c *CacheConfig) validate() error {
	if c.DB < 0 || c.DB > 15 {
		return fmt.Errorf("invalid db: %d", c.DB)
	}
	return nil
}
