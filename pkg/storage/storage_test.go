package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr error
	}{
		{"connection string", storage.Config{ContainerName: "catalog", ConnectionString: azuriteConnString}, nil},
		{"nothing configured", storage.Config{ContainerName: "catalog"}, storage.ErrNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, err := storage.New(&tt.cfg, discard())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || sys == nil {
				t.Fatalf("New() = %v, %v", sys, err)
			}
		})
	}

	t.Run("invalid connection string", func(t *testing.T) {
		cfg := storage.Config{ContainerName: "catalog", ConnectionString: "not-a-connection-string"}
		if _, err := storage.New(&cfg, discard()); err == nil {
			t.Fatal("expected error for invalid connection string")
		}
	})
}

func TestKeyValidation(t *testing.T) {
	cfg := storage.Config{ContainerName: "catalog", ConnectionString: azuriteConnString}
	sys, err := storage.New(&cfg, discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		want error
	}{
		{"empty", "", storage.ErrEmptyKey},
		{"traversal", "../secrets.json", storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sys.Download(ctx, tt.key); !errors.Is(err, tt.want) {
				t.Errorf("Download: got %v, want %v", err, tt.want)
			}
			if _, err := sys.Exists(ctx, tt.key); !errors.Is(err, tt.want) {
				t.Errorf("Exists: got %v, want %v", err, tt.want)
			}
			if err := sys.Upload(ctx, tt.key, strings.NewReader("[]"), "application/json"); !errors.Is(err, tt.want) {
				t.Errorf("Upload: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_STORAGE_ACCOUNT_URL", "https://gallery.blob.core.windows.net")

	tests := []struct {
		name        string
		cfg         storage.Config
		env         *storage.Env
		wantErr     bool
		wantEnabled bool
	}{
		{"disabled by default", storage.Config{}, nil, false, false},
		{"connection string", storage.Config{ConnectionString: azuriteConnString}, nil, false, true},
		{"account url from env", storage.Config{}, &storage.Env{AccountURL: "TEST_STORAGE_ACCOUNT_URL"}, false, true},
		{"both set", storage.Config{ConnectionString: azuriteConnString, AccountURL: "https://x.blob.core.windows.net"}, nil, true, true},
		{"insecure account url", storage.Config{AccountURL: "http://x.blob.core.windows.net"}, nil, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.cfg.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", tt.cfg.Enabled(), tt.wantEnabled)
			}
			if tt.cfg.ContainerName != "catalog" {
				t.Errorf("container default: got %q", tt.cfg.ContainerName)
			}
		})
	}
}
