package profiles_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/Tonn-hash/galeria-de-prompts/internal/profiles"
	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/routes"
)

type mockSystem struct {
	findFn       func(ctx context.Context, userID uuid.UUID, email string) (*profiles.Profile, error)
	upsertFn     func(ctx context.Context, userID uuid.UUID, cmd profiles.UpdateCommand) (*profiles.Profile, error)
	activateFn   func(ctx context.Context, userID uuid.UUID, code string) (*profiles.Profile, error)
	storeCodesFn func(ctx context.Context, codes []profiles.ActivationCode) error
}

func (m *mockSystem) Handler() *profiles.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) Find(ctx context.Context, userID uuid.UUID, email string) (*profiles.Profile, error) {
	return m.findFn(ctx, userID, email)
}

func (m *mockSystem) Upsert(ctx context.Context, userID uuid.UUID, cmd profiles.UpdateCommand) (*profiles.Profile, error) {
	return m.upsertFn(ctx, userID, cmd)
}

func (m *mockSystem) Activate(ctx context.Context, userID uuid.UUID, code string) (*profiles.Profile, error) {
	return m.activateFn(ctx, userID, code)
}

func (m *mockSystem) StoreCodes(ctx context.Context, codes []profiles.ActivationCode) error {
	return m.storeCodesFn(ctx, codes)
}

func newTestHandler(sys *mockSystem) *profiles.Handler {
	return profiles.NewHandler(sys, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var testUser = session.State{
	Authenticated: true,
	UserID:        uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
	Email:         "ana@example.com",
}

func setupMux(h *profiles.Handler, state session.State) http.Handler {
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r.WithContext(session.WithState(r.Context(), state)))
	})
}

func TestHandlerFind(t *testing.T) {
	sys := &mockSystem{
		findFn: func(_ context.Context, userID uuid.UUID, email string) (*profiles.Profile, error) {
			p := profiles.DefaultProfile(userID, email)
			return &p, nil
		},
	}

	t.Run("returns default profile", func(t *testing.T) {
		rec := httptest.NewRecorder()
		setupMux(newTestHandler(sys), testUser).ServeHTTP(rec, httptest.NewRequest("GET", "/profile", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var p profiles.Profile
		if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if p.ID != testUser.UserID || p.Username == nil || *p.Username != "ana" {
			t.Errorf("profile = %+v", p)
		}
	})

	t.Run("requires auth", func(t *testing.T) {
		rec := httptest.NewRecorder()
		setupMux(newTestHandler(sys), session.Anonymous()).ServeHTTP(rec, httptest.NewRequest("GET", "/profile", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestHandlerUpdate(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"saved", `{"username":"ana","gender":"outro"}`, nil, http.StatusOK},
		{"invalid json", `{`, nil, http.StatusBadRequest},
		{"invalid gender", `{"gender":"x"}`, profiles.ErrInvalidGender, http.StatusBadRequest},
		{"invalid date", `{"date_of_birth":"x"}`, profiles.ErrInvalidDate, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				upsertFn: func(_ context.Context, userID uuid.UUID, cmd profiles.UpdateCommand) (*profiles.Profile, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &profiles.Profile{ID: userID, Username: cmd.Username, Gender: cmd.Gender}, nil
				},
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("PUT", "/profile", bytes.NewBufferString(tt.body))
			setupMux(newTestHandler(sys), testUser).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerActivate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"activated", nil, http.StatusOK},
		{"invalid code", profiles.ErrInvalidCode, http.StatusBadRequest},
		{"already redeemed", profiles.ErrCodeRedeemed, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCode string
			sys := &mockSystem{
				activateFn: func(_ context.Context, userID uuid.UUID, code string) (*profiles.Profile, error) {
					gotCode = code
					if tt.err != nil {
						return nil, tt.err
					}
					return &profiles.Profile{ID: userID, IsPremium: true}, nil
				},
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/profile/activate", bytes.NewBufferString(`{"code":"ABC-DEF"}`))
			setupMux(newTestHandler(sys), testUser).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if gotCode != "ABC-DEF" {
				t.Errorf("code = %q", gotCode)
			}
		})
	}
}
