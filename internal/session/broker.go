package session

import (
	"context"
	"slices"
	"sync"
)

// EventKind names a session transition.
type EventKind string

const (
	EventResolved EventKind = "resolved"
	EventLogin    EventKind = "login"
	EventLogout   EventKind = "logout"
)

// Event is delivered to subscribers on every transition.
type Event struct {
	Kind  EventKind
	State State
}

// Provider exposes the current session and its transitions.
type Provider interface {
	// Current reports the state and whether the initial resolve finished.
	Current() (State, bool)
	// Subscribe registers fn and returns a function that removes it.
	Subscribe(fn func(Event)) func()
}

type listener struct {
	id uint64
	fn func(Event)
}

// Broker is the in-process Provider. Events are delivered synchronously,
// in publish order and subscription order. Listeners must not publish.
type Broker struct {
	publish sync.Mutex

	mu        sync.RWMutex
	state     State
	resolved  bool
	listeners []listener
	nextID    uint64
}

// NewBroker creates a Broker whose session is pending until Resolve.
func NewBroker() *Broker {
	return &Broker{}
}

// Current returns the session state. The second result is false while the
// session is still pending.
func (b *Broker) Current() (State, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state, b.resolved
}

// Subscribe registers fn for every later transition and returns a function
// that removes it.
func (b *Broker) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.listeners = slices.DeleteFunc(b.listeners, func(l listener) bool {
				return l.id == id
			})
		})
	}
}

// Resolve records the initial state. Only the first call publishes; later
// calls return false.
func (b *Broker) Resolve(state State) bool {
	b.publish.Lock()
	defer b.publish.Unlock()

	b.mu.RLock()
	done := b.resolved
	b.mu.RUnlock()
	if done {
		return false
	}

	b.emit(EventResolved, state)
	return true
}

// ResolveToken resolves token with r and publishes the result.
func (b *Broker) ResolveToken(ctx context.Context, r *Resolver, token string) bool {
	return b.Resolve(r.Resolve(ctx, token))
}

// Login publishes an authenticated state.
func (b *Broker) Login(state State) error {
	if !state.Authenticated {
		return ErrAuthenticationRequired
	}
	b.publish.Lock()
	defer b.publish.Unlock()
	b.emit(EventLogin, state)
	return nil
}

// Logout publishes the anonymous state. It is a no-op returning false when
// no one is signed in.
func (b *Broker) Logout() bool {
	b.publish.Lock()
	defer b.publish.Unlock()

	b.mu.RLock()
	signedIn := b.state.Authenticated
	b.mu.RUnlock()
	if !signedIn {
		return false
	}

	b.emit(EventLogout, Anonymous())
	return true
}

// emit must be called with b.publish held.
func (b *Broker) emit(kind EventKind, state State) {
	b.mu.Lock()
	b.state = state
	b.resolved = true
	fns := make([]func(Event), len(b.listeners))
	for i, l := range b.listeners {
		fns[i] = l.fn
	}
	b.mu.Unlock()

	ev := Event{Kind: kind, State: state}
	for _, fn := range fns {
		fn(ev)
	}
}
