package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/formatting"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/lifecycle"
)

// Store loads the catalog once per process and serves copies of it.
// Concurrent first loads share a single fetch. A failed load leaves the
// store empty so a later call can retry.
type Store struct {
	source   Source
	logger   *slog.Logger
	maxBytes int64
	timeout  time.Duration

	group singleflight.Group

	mu      sync.RWMutex
	prompts []Prompt
	loaded  bool
}

// NewStore creates a Store over source. Documents larger than maxBytes are
// rejected; a zero timeout leaves fetches bounded only by the caller's
// context.
func NewStore(source Source, logger *slog.Logger, maxBytes int64, timeout time.Duration) *Store {
	return &Store{
		source:   source,
		logger:   logger.With("system", "catalog"),
		maxBytes: maxBytes,
		timeout:  timeout,
	}
}

// Start loads the catalog during startup. Failure is logged, not fatal:
// requests keep retrying through Load.
func (s *Store) Start(lc *lifecycle.Coordinator) {
	lc.OnStartup(func() error {
		if _, err := s.Load(lc.Context()); err != nil {
			s.logger.Error("initial catalog load failed", "source", s.source.String(), "error", err)
		}
		return nil
	})
}

// Load returns the catalog, fetching it on first use. Errors wrap
// ErrDataUnavailable and no partial catalog is ever kept.
func (s *Store) Load(ctx context.Context) ([]Prompt, error) {
	if prompts, ok := s.cached(); ok {
		return prompts, nil
	}

	v, err, _ := s.group.Do("load", func() (any, error) {
		if prompts, ok := s.cached(); ok {
			return prompts, nil
		}

		prompts, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.prompts = prompts
		s.loaded = true
		s.mu.Unlock()

		s.logger.Info("catalog loaded", "source", s.source.String(), "prompts", len(prompts))
		return prompts, nil
	})
	if err != nil {
		return nil, err
	}

	return slices.Clone(v.([]Prompt)), nil
}

// Snapshot returns the loaded catalog without triggering a fetch.
func (s *Store) Snapshot() ([]Prompt, error) {
	if prompts, ok := s.cached(); ok {
		return prompts, nil
	}
	return nil, fmt.Errorf("%w: not loaded", ErrDataUnavailable)
}

// Contains reports whether the catalog holds a record with id.
func (s *Store) Contains(ctx context.Context, id int) (bool, error) {
	prompts, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	_, err = Find(prompts, id)
	return err == nil, nil
}

func (s *Store) cached() ([]Prompt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, false
	}
	return slices.Clone(s.prompts), true
}

func (s *Store) fetch(ctx context.Context) ([]Prompt, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	r, err := s.source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrDataUnavailable, s.source, err)
	}
	defer r.Close()

	reader := io.Reader(r)
	if s.maxBytes > 0 {
		reader = io.LimitReader(r, s.maxBytes+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrDataUnavailable, s.source, err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %s", ErrDataUnavailable, s.source, formatting.FormatBytes(s.maxBytes, 1))
	}

	prompts, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	return prompts, nil
}
