// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (logging, database, blob storage, redis)
// that the gallery domain systems require.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/Tonn-hash/galeria-de-prompts/internal/config"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/database"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/lifecycle"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Storage and Cache are nil when their sections are not configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Cache     *redis.Client
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := cfg.Logging.NewLogger(os.Stderr)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
	}

	if cfg.Storage.Enabled() {
		store, err := storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
		infra.Storage = store
	}

	if cfg.Cache.Enabled() {
		infra.Cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
	}

	return infra, nil
}

// Start registers all configured infrastructure systems with the lifecycle
// coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	if i.Cache != nil {
		i.startCache()
	}
	return nil
}

func (i *Infrastructure) startCache() {
	logger := i.Logger.With("system", "cache")
	logger.Info("starting redis client")

	i.Lifecycle.OnStartup(func() error {
		if err := i.Cache.Ping(i.Lifecycle.Context()).Err(); err != nil {
			logger.Error("redis ping failed", "error", err)
			return fmt.Errorf("redis ping: %w", err)
		}
		logger.Info("redis connection established")
		return nil
	})

	i.Lifecycle.OnShutdown(func() {
		<-i.Lifecycle.Context().Done()
		if err := i.Cache.Close(); err != nil {
			logger.Error("redis close failed", "error", err)
			return
		}
		logger.Info("redis connection closed")
	})
}

// Ping checks the database and, when configured, redis.
func (i *Infrastructure) Ping(ctx context.Context) error {
	if err := i.Database.Connection().PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if i.Cache != nil {
		if err := i.Cache.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}
