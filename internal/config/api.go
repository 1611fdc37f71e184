package config

import (
	"fmt"
	"slices"
	"os"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/middleware"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "GALLERY_CORS_ENABLED",
	Origins:          "GALLERY_CORS_ORIGINS",
	AllowedMethods:   "GALLERY_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "GALLERY_CORS_ALLOWED_HEADERS",
	AllowCredentials: "GALLERY_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "GALLERY_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "GALLERY_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "GALLERY_PAGINATION_MAX_PAGE_SIZE",
}

// Favorites stores.
const (
	FavoritesStorePostgres = "postgres"
	FavoritesStoreMemory   = "memory"
)

// APIConfig holds API routing, CORS, pagination, and favorites settings.
// FavoritesStore selects where favorite edges persist; memory keeps them
// for the life of the process.
type APIConfig struct {
	BasePath       string                `toml:"base_path"`
	FavoritesStore string                `toml:"favorites_store"`
	CORS           middleware.CORSConfig `toml:"cors"`
	Pagination     pagination.Config     `toml:"pagination"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if !slices.Contains([]string{FavoritesStorePostgres, FavoritesStoreMemory}, c.FavoritesStore) {
		return fmt.Errorf("invalid favorites_store %q: must be %s or %s",
			c.FavoritesStore, FavoritesStorePostgres, FavoritesStoreMemory)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.FavoritesStore != "" {
		c.FavoritesStore = overlay.FavoritesStore
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.FavoritesStore == "" {
		c.FavoritesStore = FavoritesStorePostgres
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("GALLERY_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("GALLERY_API_FAVORITES_STORE"); v != "" {
		c.FavoritesStore = v
	}
}
