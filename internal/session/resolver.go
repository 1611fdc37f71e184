package session

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Resolver turns a raw bearer token into a session state.
type Resolver struct {
	verifier Verifier
	revoker  Revoker
	logger   *slog.Logger
	now      func() time.Time
}

// NewResolver creates a Resolver that checks verified tokens against revoker.
func NewResolver(verifier Verifier, revoker Revoker, logger *slog.Logger) *Resolver {
	return &Resolver{
		verifier: verifier,
		revoker:  revoker,
		logger:   logger.With("component", "session"),
		now:      time.Now,
	}
}

// Resolve never fails: any token that cannot be trusted yields the
// anonymous state.
func (r *Resolver) Resolve(ctx context.Context, token string) State {
	if token == "" {
		return Anonymous()
	}

	claims, err := r.verifier.Verify(ctx, token)
	if err != nil {
		r.logger.Debug("token rejected", "error", err)
		return Anonymous()
	}

	revoked, err := r.revoker.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		r.logger.Warn("revocation check failed", "error", err)
		return Anonymous()
	}
	if revoked {
		return Anonymous()
	}

	return FromClaims(claims)
}

// Logout revokes the state's token for the remainder of its lifetime.
func (r *Resolver) Logout(ctx context.Context, state State) error {
	if !state.Authenticated {
		return ErrAuthenticationRequired
	}
	ttl := state.ExpiresAt.Sub(r.now())
	if err := r.revoker.Revoke(ctx, state.TokenID, ttl); err != nil {
		return err
	}
	r.logger.Info("session ended", "user_id", state.UserID)
	return nil
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(req *http.Request) string {
	scheme, token, ok := strings.Cut(req.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
