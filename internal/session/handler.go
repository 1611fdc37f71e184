package session

import (
	"log/slog"
	"net/http"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/handlers"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/routes"
)

// Handler exposes the caller's session over HTTP.
type Handler struct {
	resolver *Resolver
	logger   *slog.Logger
}

// NewHandler creates a session handler backed by resolver.
func NewHandler(resolver *Resolver, logger *slog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		logger:   logger.With("handler", "session"),
	}
}

// Routes returns the session route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/session",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Current},
			{Method: "POST", Pattern: "/logout", Handler: h.Logout},
		},
	}
}

// Current returns the caller's resolved session state.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromContext(r.Context()))
}

// Logout revokes the caller's token. Anonymous callers get 401.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.resolver.Logout(r.Context(), FromContext(r.Context())); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
