package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker records tokens that were signed out before their expiry.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// MemoryRevoker keeps revocations in process memory.
type MemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevoker creates an empty process-local revocation list.
func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *MemoryRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = r.now().Add(ttl)
	return nil
}

func (r *MemoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expires, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if r.now().After(expires) {
		delete(r.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

const redisTimeout = 3 * time.Second

// RedisRevoker stores revocations as expiring redis keys so every replica
// honors a logout.
type RedisRevoker struct {
	client *redis.Client
	prefix string
}

// NewRedisRevoker creates a revoker writing keys under prefix + "revoked:".
func NewRedisRevoker(client *redis.Client, prefix string) *RedisRevoker {
	return &RedisRevoker{client: client, prefix: prefix + "revoked:"}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	return r.client.Set(ctx, r.prefix+tokenID, "1", ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	n, err := r.client.Exists(ctx, r.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
