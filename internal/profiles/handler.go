package profiles

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/handlers"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/routes"
)

// Handler provides HTTP endpoints for the caller's profile.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a profiles handler over sys.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "profiles"),
	}
}

// Routes returns the profile route group. Every route requires a signed-in
// session.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:     "/profile",
		Middleware: []func(http.Handler) http.Handler{session.RequireAuth(h.logger)},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Find},
			{Method: "PUT", Pattern: "", Handler: h.Update},
			{Method: "POST", Pattern: "/activate", Handler: h.Activate},
		},
	}
}

// Find returns the caller's profile, or defaults derived from the email
// when none is stored.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	state := session.FromContext(r.Context())

	p, err := h.sys.Find(r.Context(), state.UserID, state.Email)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, p)
}

// Update validates and saves the caller's profile.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.sys.Upsert(r.Context(), session.FromContext(r.Context()).UserID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, p)
}

// Activate redeems a premium activation code for the caller.
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	var cmd ActivateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.sys.Activate(r.Context(), session.FromContext(r.Context()).UserID, cmd.Code)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, p)
}
