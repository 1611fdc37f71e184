package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
)

func newRedisRevoker(t *testing.T) (*session.RedisRevoker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return session.NewRedisRevoker(client, "gallery:"), mr
}

func TestRevokers(t *testing.T) {
	redisRevoker, _ := newRedisRevoker(t)

	tests := []struct {
		name    string
		revoker session.Revoker
	}{
		{"memory", session.NewMemoryRevoker()},
		{"redis", redisRevoker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			if revoked, err := tt.revoker.IsRevoked(ctx, "a"); err != nil || revoked {
				t.Fatalf("fresh token: revoked=%v err=%v", revoked, err)
			}
			if err := tt.revoker.Revoke(ctx, "a", time.Hour); err != nil {
				t.Fatalf("Revoke: %v", err)
			}
			if revoked, err := tt.revoker.IsRevoked(ctx, "a"); err != nil || !revoked {
				t.Errorf("after revoke: revoked=%v err=%v", revoked, err)
			}
			if revoked, _ := tt.revoker.IsRevoked(ctx, "b"); revoked {
				t.Error("unrelated token reported revoked")
			}

			if err := tt.revoker.Revoke(ctx, "c", 0); err != nil {
				t.Fatalf("Revoke expired: %v", err)
			}
			if revoked, _ := tt.revoker.IsRevoked(ctx, "c"); revoked {
				t.Error("already-expired token should not be stored")
			}
		})
	}
}

func TestMemoryRevokerExpires(t *testing.T) {
	r := session.NewMemoryRevoker()
	ctx := context.Background()

	if err := r.Revoke(ctx, "short", 10*time.Millisecond); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if revoked, _ := r.IsRevoked(ctx, "short"); revoked {
		t.Error("revocation outlived its ttl")
	}
}

func TestRedisRevokerKeys(t *testing.T) {
	r, mr := newRedisRevoker(t)
	ctx := context.Background()

	if err := r.Revoke(ctx, "tok", time.Minute); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if !mr.Exists("gallery:revoked:tok") {
		t.Fatal("expected prefixed key")
	}
	if ttl := mr.TTL("gallery:revoked:tok"); ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if revoked, _ := r.IsRevoked(ctx, "tok"); revoked {
		t.Error("revocation outlived its ttl")
	}
}

func TestRedisRevokerUnavailable(t *testing.T) {
	r, mr := newRedisRevoker(t)
	mr.Close()

	if _, err := r.IsRevoked(context.Background(), "tok"); err == nil {
		t.Error("expected error when redis is down")
	}
}
