package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/handlers"
)

type contextKey struct{}

// WithState attaches a session state to ctx.
func WithState(ctx context.Context, state State) context.Context {
	return context.WithValue(ctx, contextKey{}, state)
}

// FromContext returns the state attached to ctx, or the anonymous state.
func FromContext(ctx context.Context) State {
	if state, ok := ctx.Value(contextKey{}).(State); ok {
		return state
	}
	return Anonymous()
}

// Middleware resolves the request's bearer token and attaches the result.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		state := r.Resolve(req.Context(), BearerToken(req))
		next.ServeHTTP(w, req.WithContext(WithState(req.Context(), state)))
	})
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !FromContext(req.Context()).Authenticated {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrAuthenticationRequired)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
