package favorites

import (
	"slices"
	"sync"
)

// Optimistic is a client-side overlay over committed favorites: a toggle
// flips the displayed value immediately, then commits or reverts once the
// backend answers.
type Optimistic struct {
	mu         sync.Mutex
	committed  map[int]bool
	pending    map[int]*Pending
	generation uint64
}

// Pending is a tentative flip awaiting the backend.
type Pending struct {
	o          *Optimistic
	id         int
	value      bool
	generation uint64
}

// NewOptimistic seeds the overlay with the committed favorite ids.
func NewOptimistic(ids []int) *Optimistic {
	o := &Optimistic{}
	o.Reset(ids)
	return o
}

// Reset replaces the committed state and abandons in-flight flips; their
// later Commit or Revert is ignored.
func (o *Optimistic) Reset(ids []int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++
	o.committed = make(map[int]bool, len(ids))
	for _, id := range ids {
		o.committed[id] = true
	}
	o.pending = make(map[int]*Pending)
}

// IsFavorite returns the displayed value, pending flips included.
func (o *Optimistic) IsFavorite(id int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if p, ok := o.pending[id]; ok {
		return p.value
	}
	return o.committed[id]
}

// IsPending reports whether id has a flip in flight.
func (o *Optimistic) IsPending(id int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.pending[id]
	return ok
}

// Begin flips id. A second Begin before the first resolves returns
// ErrPending.
func (o *Optimistic) Begin(id int) (*Pending, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.pending[id]; ok {
		return nil, ErrPending
	}
	p := &Pending{
		o:          o,
		id:         id,
		value:      !o.committed[id],
		generation: o.generation,
	}
	o.pending[id] = p
	return p, nil
}

// Committed returns the committed favorite ids in ascending order.
func (o *Optimistic) Committed() []int {
	o.mu.Lock()
	defer o.mu.Unlock()

	ids := make([]int, 0, len(o.committed))
	for id, fav := range o.committed {
		if fav {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Value is the tentative displayed value.
func (p *Pending) Value() bool {
	return p.value
}

// Commit keeps the flipped value.
func (p *Pending) Commit() {
	p.Settle(p.value)
}

// Settle commits the value the backend reported, which wins over the
// tentative flip when they disagree.
func (p *Pending) Settle(favorite bool) {
	p.resolve(func() {
		if favorite {
			p.o.committed[p.id] = true
		} else {
			delete(p.o.committed, p.id)
		}
	})
}

// Revert restores the pre-attempt value.
func (p *Pending) Revert() {
	p.resolve(func() {})
}

func (p *Pending) resolve(apply func()) {
	p.o.mu.Lock()
	defer p.o.mu.Unlock()

	if p.o.generation != p.generation || p.o.pending[p.id] != p {
		return
	}
	apply()
	delete(p.o.pending, p.id)
}
