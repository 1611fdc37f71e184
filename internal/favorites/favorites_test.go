package favorites_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Tonn-hash/galeria-de-prompts/internal/favorites"
	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func user() session.State {
	return session.State{Authenticated: true, UserID: uuid.New(), Email: "ana@example.com"}
}

// mockBackend wraps a MemoryBackend with injectable failures and hooks.
type mockBackend struct {
	*favorites.MemoryBackend
	listErr   error
	addErr    error
	removeErr error
	onWrite   func()
}

func newMock() *mockBackend {
	return &mockBackend{MemoryBackend: favorites.NewMemoryBackend()}
}

func (m *mockBackend) List(ctx context.Context, userID uuid.UUID) ([]int, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.MemoryBackend.List(ctx, userID)
}

func (m *mockBackend) Add(ctx context.Context, userID uuid.UUID, promptID int) error {
	if m.onWrite != nil {
		m.onWrite()
	}
	if m.addErr != nil {
		return m.addErr
	}
	return m.MemoryBackend.Add(ctx, userID, promptID)
}

func (m *mockBackend) Remove(ctx context.Context, userID uuid.UUID, promptID int) error {
	if m.onWrite != nil {
		m.onWrite()
	}
	if m.removeErr != nil {
		return m.removeErr
	}
	return m.MemoryBackend.Remove(ctx, userID, promptID)
}

func TestToggleTwice(t *testing.T) {
	set := favorites.NewSet(favorites.NewMemoryBackend(), discard())
	u := user()
	ctx := context.Background()

	if got := set.IsFavorite(ctx, u, 7); got.Favorite || got.Warning != nil {
		t.Fatalf("initial lookup = %+v", got)
	}

	steps := []struct {
		want     favorites.Result
		favorite bool
	}{
		{favorites.Added, true},
		{favorites.Removed, false},
		{favorites.Added, true},
	}
	for i, step := range steps {
		got, err := set.Toggle(ctx, u, 7)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if got != step.want {
			t.Errorf("toggle %d = %s, want %s", i, got, step.want)
		}
		if lookup := set.IsFavorite(ctx, u, 7); lookup.Favorite != step.favorite {
			t.Errorf("after toggle %d favorite = %v, want %v", i, lookup.Favorite, step.favorite)
		}
	}

	if n := favorites.LockCount(set); n != 0 {
		t.Errorf("%d pair locks left behind", n)
	}
}

func TestAnonymous(t *testing.T) {
	set := favorites.NewSet(favorites.NewMemoryBackend(), discard())
	anon := session.Anonymous()
	ctx := context.Background()

	if _, err := set.Toggle(ctx, anon, 1); !errors.Is(err, session.ErrAuthenticationRequired) {
		t.Errorf("Toggle err = %v", err)
	}
	if _, err := set.List(ctx, anon); !errors.Is(err, session.ErrAuthenticationRequired) {
		t.Errorf("List err = %v", err)
	}
	if got := set.IsFavorite(ctx, anon, 1); got.Favorite || got.Warning != nil {
		t.Errorf("IsFavorite = %+v", got)
	}
}

func TestToggleInvalidID(t *testing.T) {
	set := favorites.NewSet(favorites.NewMemoryBackend(), discard())
	if _, err := set.Toggle(context.Background(), user(), 0); !errors.Is(err, favorites.ErrInvalidID) {
		t.Errorf("err = %v, want ErrInvalidID", err)
	}
}

func TestStoreFailures(t *testing.T) {
	down := errors.New("connection refused")

	tests := []struct {
		name     string
		seeded   bool
		setup    func(*mockBackend)
		favorite bool
	}{
		{"list fails", false, func(m *mockBackend) { m.listErr = down }, false},
		{"add fails", false, func(m *mockBackend) { m.addErr = down }, false},
		{"remove fails", true, func(m *mockBackend) { m.removeErr = down }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			u := user()
			backend := newMock()
			if tt.seeded {
				backend.MemoryBackend.Add(ctx, u.UserID, 3)
			}
			tt.setup(backend)
			set := favorites.NewSet(backend, discard())

			_, err := set.Toggle(ctx, u, 3)
			if !errors.Is(err, favorites.ErrStore) || !errors.Is(err, down) {
				t.Fatalf("err = %v, want ErrStore wrapping cause", err)
			}

			ids, _ := backend.MemoryBackend.List(ctx, u.UserID)
			if has := len(ids) == 1; has != tt.favorite {
				t.Errorf("stored favorite = %v, want unchanged %v", has, tt.favorite)
			}
		})
	}
}

func TestLookupSoftFails(t *testing.T) {
	backend := newMock()
	backend.listErr = errors.New("timeout")
	set := favorites.NewSet(backend, discard())

	got := set.IsFavorite(context.Background(), user(), 1)
	if got.Favorite {
		t.Error("lookup should degrade to false")
	}
	if !errors.Is(got.Warning, favorites.ErrStore) {
		t.Errorf("warning = %v, want ErrStore", got.Warning)
	}

	m := set.Membership(context.Background(), user())
	if m.Has(1) || m.Warning == nil {
		t.Errorf("membership = %+v", m)
	}
}

func TestConcurrentTogglesSerialize(t *testing.T) {
	var inFlight, peak atomic.Int32
	backend := newMock()
	backend.onWrite = func() {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
	}
	set := favorites.NewSet(backend, discard())
	u := user()

	const n = 10
	var added, removed atomic.Int32
	var wg sync.WaitGroup
	for range n {
		wg.Go(func() {
			res, err := set.Toggle(context.Background(), u, 5)
			if err != nil {
				t.Errorf("Toggle: %v", err)
				return
			}
			if res == favorites.Added {
				added.Add(1)
			} else {
				removed.Add(1)
			}
		})
	}
	wg.Wait()

	if peak.Load() != 1 {
		t.Errorf("peak concurrent writes on one pair = %d, want 1", peak.Load())
	}
	if added.Load() != n/2 || removed.Load() != n/2 {
		t.Errorf("added=%d removed=%d", added.Load(), removed.Load())
	}
	if set.IsFavorite(context.Background(), u, 5).Favorite {
		t.Error("even number of toggles should leave the pair unfavorited")
	}
}

func TestDistinctPairsRunConcurrently(t *testing.T) {
	backend := newMock()
	arrived := make(chan struct{}, 2)
	release := make(chan struct{})
	backend.onWrite = func() {
		arrived <- struct{}{}
		<-release
	}
	set := favorites.NewSet(backend, discard())
	u := user()

	var wg sync.WaitGroup
	for _, id := range []int{1, 2} {
		wg.Go(func() {
			set.Toggle(context.Background(), u, id)
		})
	}

	for range 2 {
		select {
		case <-arrived:
		case <-time.After(2 * time.Second):
			t.Fatal("toggles on distinct pairs did not overlap")
		}
	}
	close(release)
	wg.Wait()
}

func TestToggleHonorsCancellation(t *testing.T) {
	backend := newMock()
	entered := make(chan struct{})
	release := make(chan struct{})
	backend.onWrite = func() {
		close(entered)
		<-release
	}
	set := favorites.NewSet(backend, discard())
	u := user()

	done := make(chan struct{})
	go func() {
		defer close(done)
		set.Toggle(context.Background(), u, 9)
	}()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := set.Toggle(ctx, u, 9); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}

	close(release)
	<-done
	if n := favorites.LockCount(set); n != 0 {
		t.Errorf("%d pair locks left behind", n)
	}
}
