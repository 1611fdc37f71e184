package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/middleware"
)

func tag(order *[]string, name string) middleware.Func {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestApplyOrder(t *testing.T) {
	var order []string
	mw := middleware.New()
	mw.Use(tag(&order, "first"))
	mw.Use(tag(&order, "second"))

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	want := []string{"first", "second", "handler"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order: got %v, want %v", order, want)
	}
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		cfg        middleware.CORSConfig
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{
			name:       "disabled",
			cfg:        middleware.CORSConfig{Enabled: false, Origins: []string{"http://example.com"}},
			method:     "GET",
			origin:     "http://example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "allowed origin",
			cfg:        middleware.CORSConfig{Enabled: true, Origins: []string{"http://example.com"}},
			method:     "GET",
			origin:     "http://example.com",
			wantOrigin: "http://example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wildcard echoes origin",
			cfg:        middleware.CORSConfig{Enabled: true, Origins: []string{"*"}},
			method:     "GET",
			origin:     "http://any.dev",
			wantOrigin: "http://any.dev",
			wantStatus: http.StatusOK,
		},
		{
			name:       "disallowed origin",
			cfg:        middleware.CORSConfig{Enabled: true, Origins: []string{"http://allowed.com"}},
			method:     "GET",
			origin:     "http://denied.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "preflight short circuits",
			cfg:        middleware.CORSConfig{Enabled: true, Origins: []string{"http://example.com"}},
			method:     "OPTIONS",
			origin:     "http://example.com",
			wantOrigin: "http://example.com",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)

			middleware.CORS(&tt.cfg)(ok).ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow-origin: got %q, want %q", got, tt.wantOrigin)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestCORSConfigEnv(t *testing.T) {
	t.Setenv("TEST_CORS_ORIGINS", "http://a.com, http://b.com,,")
	t.Setenv("TEST_CORS_ENABLED", "true")

	cfg := middleware.CORSConfig{}
	if err := cfg.Finalize(&middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
	}); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if !cfg.Enabled {
		t.Error("enabled should be loaded from env")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://b.com" {
		t.Errorf("origins: got %v", cfg.Origins)
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("max age default: got %d, want 3600", cfg.MaxAge)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFromContext(r.Context())
	}))

	t.Run("generates when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		if seen == "" {
			t.Fatal("expected generated request id in context")
		}
		if got := rec.Header().Get(middleware.RequestIDHeader); got != seen {
			t.Errorf("header: got %q, want %q", got, seen)
		}
	})

	t.Run("reuses inbound id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		handler.ServeHTTP(rec, req)

		if seen != "abc-123" {
			t.Errorf("context id: got %q, want abc-123", seen)
		}
	})
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/prompts?search=x", nil))

	out := buf.String()
	if !strings.Contains(out, "status=418") {
		t.Errorf("log missing status: %s", out)
	}
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("4xx should log at warn: %s", out)
	}
	if !strings.Contains(out, "uri=\"/prompts?search=x\"") && !strings.Contains(out, "uri=/prompts?search=x") {
		t.Errorf("log missing uri: %s", out)
	}
}
