package config

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/text/language"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/formatting"
)

const (
	EnvCatalogSource       = "GALLERY_CATALOG_SOURCE"
	EnvCatalogLocale       = "GALLERY_CATALOG_LOCALE"
	EnvCatalogMaxSize      = "GALLERY_CATALOG_MAX_SIZE"
	EnvCatalogFetchTimeout = "GALLERY_CATALOG_FETCH_TIMEOUT"
)

// CatalogConfig locates the prompt catalog and sets how names collate.
// Source is a file path, an http(s) URL, or "blob:<key>".
type CatalogConfig struct {
	Source       string `toml:"source"`
	Locale       string `toml:"locale"`
	MaxSize      string `toml:"max_size"`
	FetchTimeout string `toml:"fetch_timeout"`
}

// LocaleTag returns Locale as a language tag.
func (c *CatalogConfig) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// MaxSizeBytes returns MaxSize in bytes.
func (c *CatalogConfig) MaxSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxSize)
	if err != nil {
		return 5 * 1024 * 1024
	}
	return size
}

// FetchTimeoutDuration returns FetchTimeout as a time.Duration.
func (c *CatalogConfig) FetchTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.FetchTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CatalogConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *CatalogConfig) Merge(overlay *CatalogConfig) {
	if overlay.Source != "" {
		c.Source = overlay.Source
	}
	if overlay.Locale != "" {
		c.Locale = overlay.Locale
	}
	if overlay.MaxSize != "" {
		c.MaxSize = overlay.MaxSize
	}
	if overlay.FetchTimeout != "" {
		c.FetchTimeout = overlay.FetchTimeout
	}
}

func (c *CatalogConfig) loadDefaults() {
	if c.Source == "" {
		c.Source = "data/prompts.json"
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.MaxSize == "" {
		c.MaxSize = "5MB"
	}
	if c.FetchTimeout == "" {
		c.FetchTimeout = "10s"
	}
}

func (c *CatalogConfig) loadEnv() {
	if v := os.Getenv(EnvCatalogSource); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvCatalogLocale); v != "" {
		c.Locale = v
	}
	if v := os.Getenv(EnvCatalogMaxSize); v != "" {
		c.MaxSize = v
	}
	if v := os.Getenv(EnvCatalogFetchTimeout); v != "" {
		c.FetchTimeout = v
	}
}

func (c *CatalogConfig) validate() error {
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	if size, err := formatting.ParseBytes(c.MaxSize); err != nil || size <= 0 {
		return fmt.Errorf("invalid max_size: %s", c.MaxSize)
	}
	if _, err := time.ParseDuration(c.FetchTimeout); err != nil {
		return fmt.Errorf("invalid fetch_timeout: %w", err)
	}
	return nil
}
