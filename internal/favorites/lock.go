package favorites

import (
	"context"
	"sync"
)

// keyedLock serializes work per key. Entries are dropped once no caller
// holds or waits on them.
type keyedLock[K comparable] struct {
	mu      sync.Mutex
	entries map[K]*lockEntry
}

type lockEntry struct {
	sem  chan struct{}
	refs int
}

func newKeyedLock[K comparable]() *keyedLock[K] {
	return &keyedLock[K]{entries: make(map[K]*lockEntry)}
}

func (l *keyedLock[K]) lock(ctx context.Context, key K) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &lockEntry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				l.release(key, e)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}
}

func (l *keyedLock[K]) release(key K, e *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

func (l *keyedLock[K]) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
