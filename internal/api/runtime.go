package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Tonn-hash/galeria-de-prompts/internal/catalog"
	"github.com/Tonn-hash/galeria-de-prompts/internal/config"
	"github.com/Tonn-hash/galeria-de-prompts/internal/favorites"
	"github.com/Tonn-hash/galeria-de-prompts/internal/infrastructure"
	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/pagination"
)

// Runtime extends Infrastructure with the API-scoped favorites backend,
// catalog store, query engine, and session resolver.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Favorites  favorites.Backend
	Catalog    *catalog.Store
	Engine     *catalog.Engine
	Resolver   *session.Resolver
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	logger := infra.Logger.With("module", "api")

	source, err := catalog.ParseSource(
		cfg.Catalog.Source,
		infra.Storage,
		&http.Client{Timeout: cfg.Catalog.FetchTimeoutDuration()},
	)
	if err != nil {
		return nil, fmt.Errorf("catalog source: %w", err)
	}

	store := catalog.NewStore(
		source,
		logger,
		cfg.Catalog.MaxSizeBytes(),
		cfg.Catalog.FetchTimeoutDuration(),
	)

	verifier, err := newVerifier(infra.Lifecycle.Context(), &cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("session verifier: %w", err)
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
			Cache:     infra.Cache,
		},
		Pagination: cfg.API.Pagination,
		Favorites:  newFavoritesBackend(infra, logger, cfg.API.FavoritesStore),
		Catalog:    store,
		Engine:     catalog.NewEngine(cfg.Catalog.LocaleTag()),
		Resolver:   session.NewResolver(verifier, newRevoker(infra, &cfg.Cache), logger),
	}, nil
}

// Start registers the initial catalog load with the lifecycle coordinator.
func (r *Runtime) Start() {
	r.Catalog.Start(r.Lifecycle)
}

func newVerifier(ctx context.Context, cfg *config.AuthConfig) (session.Verifier, error) {
	switch cfg.Mode {
	case config.AuthModeOIDC:
		return session.NewOIDCVerifier(ctx, cfg.IssuerURL, cfg.ClientID)
	default:
		return session.NewJWTVerifier(session.JWTConfig{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.Issuer,
			Audience: cfg.Audience,
			Leeway:   cfg.LeewayDuration(),
		})
	}
}

func newFavoritesBackend(infra *infrastructure.Infrastructure, logger *slog.Logger, store string) favorites.Backend {
	if store == config.FavoritesStoreMemory {
		logger.Warn("favorites are held in memory and lost on restart")
		return favorites.NewMemoryBackend()
	}
	return favorites.NewRepository(infra.Database.Connection(), logger)
}

func newRevoker(infra *infrastructure.Infrastructure, cfg *config.CacheConfig) session.Revoker {
	if infra.Cache != nil {
		return session.NewRedisRevoker(infra.Cache, cfg.KeyPrefix)
	}
	infra.Logger.Warn("redis not configured; session revocations are process-local")
	return session.NewMemoryRevoker()
}
