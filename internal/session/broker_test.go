package session_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
)

func authed(email string) session.State {
	return session.State{Authenticated: true, UserID: uuid.New(), Email: email}
}

type recorder struct {
	mu     sync.Mutex
	events []session.Event
}

func (r *recorder) record(ev session.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []session.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]session.EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

func TestBrokerLifecycle(t *testing.T) {
	b := session.NewBroker()

	if _, resolved := b.Current(); resolved {
		t.Fatal("new broker reports resolved")
	}

	rec := &recorder{}
	b.Subscribe(rec.record)

	if !b.Resolve(session.Anonymous()) {
		t.Fatal("first Resolve returned false")
	}
	if b.Resolve(authed("x@example.com")) {
		t.Fatal("second Resolve returned true")
	}
	if state, resolved := b.Current(); !resolved || state.Authenticated {
		t.Fatalf("Current = %+v, %v", state, resolved)
	}

	if err := b.Login(session.Anonymous()); !errors.Is(err, session.ErrAuthenticationRequired) {
		t.Errorf("Login(anonymous) err = %v", err)
	}
	user := authed("ana@example.com")
	if err := b.Login(user); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if state, _ := b.Current(); state != user {
		t.Errorf("Current = %+v, want %+v", state, user)
	}

	if !b.Logout() {
		t.Error("Logout returned false while signed in")
	}
	if b.Logout() {
		t.Error("second Logout returned true")
	}

	want := []session.EventKind{session.EventResolved, session.EventLogin, session.EventLogout}
	if got := rec.kinds(); !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := session.NewBroker()
	rec := &recorder{}
	unsubscribe := b.Subscribe(rec.record)

	b.Resolve(session.Anonymous())
	unsubscribe()
	unsubscribe()
	b.Login(authed("ana@example.com"))

	if got := rec.kinds(); len(got) != 1 {
		t.Errorf("received %v after unsubscribe", got)
	}
}

func TestBrokerConsistentOrdering(t *testing.T) {
	b := session.NewBroker()
	first, second := &recorder{}, &recorder{}
	b.Subscribe(first.record)
	b.Subscribe(second.record)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			if i%2 == 0 {
				b.Login(authed("user@example.com"))
			} else {
				b.Logout()
			}
		})
	}
	wg.Wait()

	if len(first.events) != len(second.events) {
		t.Fatalf("listeners saw %d and %d events", len(first.events), len(second.events))
	}
	for i := range first.events {
		if first.events[i] != second.events[i] {
			t.Fatalf("event %d differs between listeners", i)
		}
	}

	last := first.events[len(first.events)-1]
	if state, _ := b.Current(); state != last.State {
		t.Error("Current does not match the last delivered event")
	}
}

func TestBrokerResolveToken(t *testing.T) {
	v := newJWT(t)
	r := session.NewResolver(v, session.NewMemoryRevoker(), discard())
	token, _ := v.Issue(uuid.New(), "ana@example.com", time.Hour)

	b := session.NewBroker()
	if !b.ResolveToken(context.Background(), r, token) {
		t.Fatal("ResolveToken returned false")
	}
	if state, _ := b.Current(); !state.Authenticated {
		t.Error("expected authenticated state")
	}
}
