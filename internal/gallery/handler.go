package gallery

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Tonn-hash/galeria-de-prompts/internal/catalog"
	"github.com/Tonn-hash/galeria-de-prompts/internal/favorites"
	"github.com/Tonn-hash/galeria-de-prompts/internal/gate"
	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/handlers"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/pagination"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/routes"
)

// Catalog loads the prompt records.
type Catalog interface {
	Load(ctx context.Context) ([]catalog.Prompt, error)
}

// Handler provides HTTP endpoints for browsing prompts.
type Handler struct {
	catalog    Catalog
	engine     *catalog.Engine
	favs       *favorites.Set
	logger     *slog.Logger
	pagination pagination.Config
}

// ListResponse is a page of cards with the filter choices and the query
// that produced them.
type ListResponse struct {
	pagination.PageResult[Card]
	Categories []string           `json:"categories"`
	Query      catalog.QueryState `json:"query"`
	Warning    string             `json:"warning,omitempty"`
}

type textResponse struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// NewHandler creates a gallery handler that renders catalog records through
// engine and decorates them with favorites from favs.
func NewHandler(
	store Catalog,
	engine *catalog.Engine,
	favs *favorites.Set,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		catalog:    store,
		engine:     engine,
		favs:       favs,
		logger:     logger.With("handler", "gallery"),
		pagination: pagination,
	}
}

// Routes returns the prompt browsing group and the favorite cards group.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix: "/prompts",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: h.List},
				{Method: "GET", Pattern: "/categories", Handler: h.Categories},
				{Method: "GET", Pattern: "/{id}", Handler: h.Find},
				{Method: "GET", Pattern: "/{id}/content", Handler: h.Content},
				{Method: "POST", Pattern: "/{id}/copy", Handler: h.Copy},
			},
		},
		{
			Prefix:     "/favorites",
			Middleware: []func(http.Handler) http.Handler{session.RequireAuth(h.logger)},
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: h.Favorites},
			},
		},
	}
}

// List runs the query in the request parameters and returns a page of
// cards rendered for the caller's session.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, err := catalog.QueryStateFromValues(r.URL.Query())
	if err != nil {
		h.respondError(w, err)
		return
	}

	records, err := h.catalog.Load(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	state := session.FromContext(r.Context())
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	visible := pagination.Paginate(h.engine.Query(records, q), page)
	membership := h.favs.Membership(r.Context(), state)

	resp := ListResponse{
		PageResult: pagination.NewPageResult(
			Render(visible.Data, state, membership.Has),
			visible.Total, visible.Page, visible.PageSize,
		),
		Categories: catalog.Categories(records),
		Query:      q,
	}
	if membership.Warning != nil {
		resp.Warning = membership.Warning.Error()
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Categories returns the distinct catalog categories in first-seen order.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	records, err := h.catalog.Load(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, catalog.Categories(records))
}

// Find returns a single card.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	p, err := h.prompt(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	state := session.FromContext(r.Context())
	lookup := h.favs.IsFavorite(r.Context(), state, p.ID)
	card := Render([]catalog.Prompt{p}, state, func(int) bool { return lookup.Favorite })[0]
	handlers.RespondJSON(w, http.StatusOK, card)
}

// Content reveals the prompt text for the detail view.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	h.text(w, r, gate.Reveal)
}

// Copy returns the prompt text for the clipboard.
func (h *Handler) Copy(w http.ResponseWriter, r *http.Request) {
	h.text(w, r, gate.Copy)
}

// Favorites returns the caller's favorited prompts as cards, oldest
// favorite first. Ids no longer in the catalog are skipped.
func (h *Handler) Favorites(w http.ResponseWriter, r *http.Request) {
	state := session.FromContext(r.Context())

	ids, err := h.favs.List(r.Context(), state)
	if err != nil {
		h.respondError(w, err)
		return
	}

	records, err := h.catalog.Load(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	favs := make([]catalog.Prompt, 0, len(ids))
	for _, id := range ids {
		if p, err := catalog.Find(records, id); err == nil {
			favs = append(favs, p)
		}
	}

	all := func(int) bool { return true }
	handlers.RespondJSON(w, http.StatusOK, Render(favs, state, all))
}

func (h *Handler) text(
	w http.ResponseWriter,
	r *http.Request,
	action func(catalog.Prompt, session.State) (string, error),
) {
	p, err := h.prompt(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	text, err := action(p, session.FromContext(r.Context()))
	if err != nil {
		h.respondError(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, textResponse{ID: p.ID, Text: text})
}

func (h *Handler) prompt(r *http.Request) (catalog.Prompt, error) {
	id, err := favorites.ParseID(r.PathValue("id"))
	if err != nil {
		return catalog.Prompt{}, err
	}
	records, err := h.catalog.Load(r.Context())
	if err != nil {
		return catalog.Prompt{}, err
	}
	return catalog.Find(records, id)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}
