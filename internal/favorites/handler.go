package favorites

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Tonn-hash/galeria-de-prompts/internal/catalog"
	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/handlers"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/routes"
)

// Catalog reports whether a prompt id exists.
type Catalog interface {
	Contains(ctx context.Context, id int) (bool, error)
}

// Handler provides HTTP endpoints for favorite operations.
type Handler struct {
	set     *Set
	catalog Catalog
	logger  *slog.Logger
}

type lookupResponse struct {
	PromptID int    `json:"prompt_id"`
	Favorite bool   `json:"favorite"`
	Warning  string `json:"warning,omitempty"`
}

type toggleResponse struct {
	PromptID int    `json:"prompt_id"`
	Result   Result `json:"result"`
	Favorite bool   `json:"favorite"`
}

// NewHandler creates a favorites handler. Prompt ids are checked against
// catalog before a toggle reaches the set.
func NewHandler(set *Set, catalog Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		set:     set,
		catalog: catalog,
		logger:  logger.With("handler", "favorites"),
	}
}

// Routes returns the favorites route group. Every route requires a
// signed-in session.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:     "/favorites",
		Middleware: []func(http.Handler) http.Handler{session.RequireAuth(h.logger)},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/ids", Handler: h.IDs},
			{Method: "GET", Pattern: "/{id}", Handler: h.Lookup},
			{Method: "POST", Pattern: "/{id}/toggle", Handler: h.Toggle},
		},
	}
}

// IDs returns the caller's favorite prompt ids, oldest first.
func (h *Handler) IDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.set.List(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, map[string][]int{"ids": ids})
}

// Lookup reports whether one prompt is a favorite. Backend failures
// answer false with a warning.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	id, err := h.promptID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	lookup := h.set.IsFavorite(r.Context(), session.FromContext(r.Context()), id)
	resp := lookupResponse{PromptID: id, Favorite: lookup.Favorite}
	if lookup.Warning != nil {
		resp.Warning = lookup.Warning.Error()
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Toggle flips a favorite and returns the new membership. Unknown prompt
// ids yield 404.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := h.promptID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.set.Toggle(r.Context(), session.FromContext(r.Context()), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toggleResponse{
		PromptID: id,
		Result:   result,
		Favorite: result == Added,
	})
}

// promptID parses the path id and checks it against the catalog.
func (h *Handler) promptID(r *http.Request) (int, error) {
	id, err := ParseID(r.PathValue("id"))
	if err != nil {
		return 0, err
	}
	ok, err := h.catalog.Contains(r.Context(), id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %d", catalog.ErrNotFound, id)
	}
	return id, nil
}

// ParseID parses a positive prompt id.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
