package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Tonn-hash/galeria-de-prompts/internal/api"
	"github.com/Tonn-hash/galeria-de-prompts/internal/config"
	"github.com/Tonn-hash/galeria-de-prompts/internal/infrastructure"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/module"
)

type Modules struct {
	API *module.Module
}

// NewModules builds the API module from the configuration.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

// Mount registers every module on router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := infra.Ping(ctx); err != nil {
			infra.Logger.Warn("readiness check failed", "error", err)
			writeStatus(w, http.StatusServiceUnavailable, "degraded")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})

	return router
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
