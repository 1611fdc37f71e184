package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Tonn-hash/galeria-de-prompts/internal/catalog"
	"github.com/Tonn-hash/galeria-de-prompts/internal/favorites"
	"github.com/Tonn-hash/galeria-de-prompts/internal/gate"
	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
)

// View is one client's live gallery: a query over a loaded catalog,
// rendered for the current session. Session events re-render every card
// before the publishing call returns. Until the session resolves the view
// renders as anonymous.
type View struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	records []catalog.Prompt
	engine  *catalog.Engine
	favs    *favorites.Set
	overlay *favorites.Optimistic

	unsubscribe func()

	mu       sync.Mutex
	closed   bool
	query    catalog.QueryState
	state    session.State
	resolved bool
	visible  []catalog.Prompt
	cards    []Card
	warning  error
}

// NewView subscribes to provider and renders the full catalog. ctx bounds
// the view's background I/O; Close cancels it.
func NewView(
	ctx context.Context,
	records []catalog.Prompt,
	engine *catalog.Engine,
	provider session.Provider,
	favs *favorites.Set,
	logger *slog.Logger,
) *View {
	ctx, cancel := context.WithCancel(ctx)
	v := &View{
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger.With("component", "gallery_view"),
		records: slices.Clone(records),
		engine:  engine,
		favs:    favs,
		overlay: favorites.NewOptimistic(nil),
	}

	v.mu.Lock()
	v.visible = v.engine.Query(v.records, v.query)
	v.mu.Unlock()

	v.unsubscribe = provider.Subscribe(v.onSession)
	if state, resolved := provider.Current(); resolved {
		v.apply(state, true)
	} else {
		v.mu.Lock()
		v.render()
		v.mu.Unlock()
	}
	return v
}

func (v *View) onSession(ev session.Event) {
	v.logger.Debug("session changed", "event", ev.Kind, "authenticated", ev.State.Authenticated)
	v.apply(ev.State, false)
}

// apply swaps in a new session, reloads its favorites, and re-renders.
// The initial state read from the provider yields to any event delivered
// since subscribing.
func (v *View) apply(state session.State, initial bool) {
	membership := v.favs.Membership(v.ctx, state)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || (initial && v.resolved) {
		return
	}

	v.state = state
	v.resolved = true
	v.warning = membership.Warning

	var ids []int
	for _, p := range v.records {
		if membership.Has(p.ID) {
			ids = append(ids, p.ID)
		}
	}
	v.overlay.Reset(ids)
	v.render()
}

// render must be called with v.mu held.
func (v *View) render() {
	v.cards = Render(v.visible, v.state, v.overlay.IsFavorite)
}

// SetQuery re-runs the query and returns the new cards.
func (v *View) SetQuery(q catalog.QueryState) ([]Card, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil, ErrClosed
	}

	v.query = q
	v.visible = v.engine.Query(v.records, q)
	v.render()
	return slices.Clone(v.cards), nil
}

// Cards returns the rendered cards.
func (v *View) Cards() []Card {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.cards)
}

// Resolved reports whether the session has resolved.
func (v *View) Resolved() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.resolved
}

// Warning returns the last favorites lookup failure, if any.
func (v *View) Warning() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.warning
}

// Copy returns the prompt text, gated on the session at call time.
func (v *View) Copy(id int) (string, error) {
	return v.gated(id, gate.Copy)
}

// Reveal returns the prompt text for the detail view, gated on the
// session at call time.
func (v *View) Reveal(id int) (string, error) {
	return v.gated(id, gate.Reveal)
}

func (v *View) gated(id int, action func(catalog.Prompt, session.State) (string, error)) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return "", ErrClosed
	}

	p, err := catalog.Find(v.records, id)
	if err != nil {
		return "", err
	}
	return action(p, v.state)
}

// ToggleFavorite flips the card immediately, then commits or reverts it
// once the favorites store answers.
func (v *View) ToggleFavorite(ctx context.Context, id int) (favorites.Result, error) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return "", ErrClosed
	}
	state := v.state
	if !state.Authenticated {
		v.mu.Unlock()
		return "", session.ErrAuthenticationRequired
	}
	if _, err := catalog.Find(v.records, id); err != nil {
		v.mu.Unlock()
		return "", err
	}
	pending, err := v.overlay.Begin(id)
	if err != nil {
		v.mu.Unlock()
		return "", err
	}
	v.render()
	v.mu.Unlock()

	ctx, stop := mergeCancel(ctx, v.ctx)
	defer stop()
	result, err := v.favs.Toggle(ctx, state, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		pending.Revert()
	} else {
		pending.Settle(result == favorites.Added)
	}
	if !v.closed {
		v.render()
	}

	if err != nil {
		return "", fmt.Errorf("toggle favorite %d: %w", id, err)
	}
	return result, nil
}

// Close unsubscribes from session events and cancels in-flight I/O.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.mu.Unlock()

	v.unsubscribe()
	v.cancel()
}

// mergeCancel returns ctx canceled when either parent is done.
func mergeCancel(ctx, other context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(other, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
