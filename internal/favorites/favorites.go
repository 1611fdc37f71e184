// Package favorites tracks the prompts each signed-in user has marked.
//
// Toggles on the same (user, prompt) pair are serialized so the stored
// edge always reflects the last completed toggle; distinct pairs proceed
// concurrently. Lookups degrade to "not a favorite" with a warning when
// the backend is unreachable.
package favorites

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
)

// Result reports the outcome of a toggle.
type Result string

const (
	Added   Result = "ADDED"
	Removed Result = "REMOVED"
)

// Lookup is the soft-failing answer to IsFavorite.
type Lookup struct {
	Favorite bool
	Warning  error
}

// Membership is a user's favorites read once for decorating many cards.
type Membership struct {
	ids     map[int]struct{}
	Warning error
}

// Has reports whether id is a favorite. The zero Membership has none.
func (m Membership) Has(id int) bool {
	_, ok := m.ids[id]
	return ok
}

type pair struct {
	user   uuid.UUID
	prompt int
}

// Set is the favorites service over a Backend.
type Set struct {
	backend Backend
	logger  *slog.Logger
	locks   *keyedLock[pair]
}

// NewSet creates a Set persisting to backend.
func NewSet(backend Backend, logger *slog.Logger) *Set {
	return &Set{
		backend: backend,
		logger:  logger.With("system", "favorites"),
		locks:   newKeyedLock[pair](),
	}
}

// IsFavorite never fails; anonymous sessions have no favorites.
func (s *Set) IsFavorite(ctx context.Context, state session.State, promptID int) Lookup {
	m := s.Membership(ctx, state)
	return Lookup{Favorite: m.Has(promptID), Warning: m.Warning}
}

// Membership reads the user's favorites once.
func (s *Set) Membership(ctx context.Context, state session.State) Membership {
	if !state.Authenticated {
		return Membership{}
	}

	ids, err := s.backend.List(ctx, state.UserID)
	if err != nil {
		s.logger.Warn("favorites lookup failed", "user_id", state.UserID, "error", err)
		return Membership{Warning: fmt.Errorf("%w: %w", ErrStore, err)}
	}

	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Membership{ids: set}
}

// List returns the user's favorite prompt ids, oldest first.
func (s *Set) List(ctx context.Context, state session.State) ([]int, error) {
	if !state.Authenticated {
		return nil, session.ErrAuthenticationRequired
	}
	ids, err := s.backend.List(ctx, state.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return ids, nil
}

// Toggle flips the edge for (user, promptID). On failure the stored state
// is left as it was.
func (s *Set) Toggle(ctx context.Context, state session.State, promptID int) (Result, error) {
	if !state.Authenticated {
		return "", session.ErrAuthenticationRequired
	}
	if promptID <= 0 {
		return "", ErrInvalidID
	}

	unlock, err := s.locks.lock(ctx, pair{user: state.UserID, prompt: promptID})
	if err != nil {
		return "", err
	}
	defer unlock()

	ids, err := s.backend.List(ctx, state.UserID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStore, err)
	}

	if slices.Contains(ids, promptID) {
		if err := s.backend.Remove(ctx, state.UserID, promptID); err != nil {
			return "", fmt.Errorf("%w: %w", ErrStore, err)
		}
		return Removed, nil
	}

	if err := s.backend.Add(ctx, state.UserID, promptID); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStore, err)
	}
	return Added, nil
}
