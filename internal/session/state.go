// Package session resolves who is behind a request and broadcasts session
// transitions (initial resolve, login, logout) to the views that depend on
// them.
package session

import (
	"time"

	"github.com/google/uuid"
)

// State is the session as seen by the gallery. The zero value is an
// anonymous visitor.
type State struct {
	Authenticated bool      `json:"authenticated"`
	UserID        uuid.UUID `json:"user_id,omitzero"`
	Email         string    `json:"email,omitempty"`
	ExpiresAt     time.Time `json:"expires_at,omitzero"`
	TokenID       string    `json:"-"`
}

// Anonymous returns the unauthenticated state.
func Anonymous() State {
	return State{}
}

// FromClaims builds an authenticated state from verified claims.
func FromClaims(c Claims) State {
	return State{
		Authenticated: true,
		UserID:        c.Subject,
		Email:         c.Email,
		ExpiresAt:     c.ExpiresAt,
		TokenID:       c.TokenID,
	}
}
