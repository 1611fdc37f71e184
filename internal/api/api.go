// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/Tonn-hash/galeria-de-prompts/internal/config"
	"github.com/Tonn-hash/galeria-de-prompts/internal/infrastructure"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/middleware"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Every request passes through the session resolver, so handlers read the
// caller's state with session.FromContext.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime, err := NewRuntime(cfg, infra)
	if err != nil {
		return nil, err
	}
	runtime.Start()

	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.RequestID)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(runtime.Resolver.Middleware)

	return m, nil
}
