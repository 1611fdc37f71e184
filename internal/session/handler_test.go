package session_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/routes"
)

func setupMux(t *testing.T) (http.Handler, *session.JWTVerifier) {
	t.Helper()
	v := newJWT(t)
	resolver := session.NewResolver(v, session.NewMemoryRevoker(), discard())
	h := session.NewHandler(resolver, discard())

	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return resolver.Middleware(mux), v
}

func do(handler http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCurrent(t *testing.T) {
	handler, v := setupMux(t)
	userID := uuid.New()
	token, _ := v.Issue(userID, "ana@example.com", time.Hour)

	tests := []struct {
		name   string
		token  string
		authed bool
	}{
		{"anonymous", "", false},
		{"signed in", token, true},
		{"bad token", "nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(handler, "GET", "/session", tt.token)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}

			var body struct {
				Authenticated bool   `json:"authenticated"`
				UserID        string `json:"user_id"`
				TokenID       string `json:"TokenID"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Authenticated != tt.authed {
				t.Errorf("authenticated = %v, want %v", body.Authenticated, tt.authed)
			}
			if tt.authed && body.UserID != userID.String() {
				t.Errorf("user_id = %q", body.UserID)
			}
			if !tt.authed && body.UserID != "" {
				t.Errorf("anonymous response carries user_id %q", body.UserID)
			}
			if body.TokenID != "" {
				t.Error("token id leaked into response")
			}
		})
	}
}

func TestHandlerLogout(t *testing.T) {
	handler, v := setupMux(t)
	token, _ := v.Issue(uuid.New(), "ana@example.com", time.Hour)

	if rec := do(handler, "POST", "/session/logout", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous logout status = %d, want 401", rec.Code)
	}
	if rec := do(handler, "POST", "/session/logout", token); rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d, want 204", rec.Code)
	}

	rec := do(handler, "GET", "/session", token)
	var body struct {
		Authenticated bool `json:"authenticated"`
	}
	json.NewDecoder(rec.Body).Decode(&body)
	if body.Authenticated {
		t.Error("token still authenticates after logout")
	}
}

func TestRequireAuth(t *testing.T) {
	protected := session.RequireAuth(discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(session.WithState(req.Context(), authed("ana@example.com")))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusTeapot {
		t.Errorf("authenticated status = %d, want 418", rec.Code)
	}
}
