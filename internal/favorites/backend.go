package favorites

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Backend persists favorite edges. Add and Remove are idempotent.
type Backend interface {
	List(ctx context.Context, userID uuid.UUID) ([]int, error)
	Add(ctx context.Context, userID uuid.UUID, promptID int) error
	Remove(ctx context.Context, userID uuid.UUID, promptID int) error
}

// MemoryBackend keeps edges in process memory, in insertion order.
type MemoryBackend struct {
	mu    sync.RWMutex
	edges map[uuid.UUID][]int
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{edges: make(map[uuid.UUID][]int)}
}

func (b *MemoryBackend) List(_ context.Context, userID uuid.UUID) ([]int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.edges[userID]), nil
}

func (b *MemoryBackend) Add(_ context.Context, userID uuid.UUID, promptID int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !slices.Contains(b.edges[userID], promptID) {
		b.edges[userID] = append(b.edges[userID], promptID)
	}
	return nil
}

func (b *MemoryBackend) Remove(_ context.Context, userID uuid.UUID, promptID int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.edges[userID] = slices.DeleteFunc(b.edges[userID], func(id int) bool {
		return id == promptID
	})
	if len(b.edges[userID]) == 0 {
		delete(b.edges, userID)
	}
	return nil
}
