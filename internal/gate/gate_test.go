package gate_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Tonn-hash/galeria-de-prompts/internal/catalog"
	"github.com/Tonn-hash/galeria-de-prompts/internal/gate"
	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
)

var (
	free    = catalog.Prompt{ID: 1, Name: "Dragon", Description: "A red dragon", Category: "Fantasy"}
	premium = catalog.Prompt{ID: 2, Name: "Cyborg", Description: "Chrome skin", Category: "Sci-Fi", IsPremium: true}

	anonymous = session.Anonymous()
	signedIn  = session.State{Authenticated: true, UserID: uuid.New()}
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		prompt catalog.Prompt
		state  session.State
		want   gate.Visibility
	}{
		{"free anonymous", free, anonymous, gate.Full},
		{"premium anonymous", premium, anonymous, gate.Locked},
		{"free signed in", free, signedIn, gate.Full},
		{"premium signed in", premium, signedIn, gate.Full},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.Evaluate(tt.prompt, tt.state); got != tt.want {
				t.Errorf("Evaluate = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRevealAndCopy(t *testing.T) {
	actions := map[string]func(catalog.Prompt, session.State) (string, error){
		"reveal": gate.Reveal,
		"copy":   gate.Copy,
	}

	for name, action := range actions {
		t.Run(name, func(t *testing.T) {
			if _, err := action(premium, anonymous); !errors.Is(err, session.ErrAuthenticationRequired) {
				t.Errorf("locked err = %v, want ErrAuthenticationRequired", err)
			}
			text, err := action(premium, signedIn)
			if err != nil || text != premium.Description {
				t.Errorf("unlocked = %q, %v", text, err)
			}
			text, err = action(free, anonymous)
			if err != nil || text != free.Description {
				t.Errorf("free = %q, %v", text, err)
			}
		})
	}
}

func TestCardFor(t *testing.T) {
	locked := gate.CardFor(premium, anonymous)
	if !locked.Locked || locked.Visibility != gate.Locked {
		t.Errorf("card = %+v, want locked", locked)
	}
	if locked.Description != "" {
		t.Errorf("locked card leaks description %q", locked.Description)
	}
	if locked.Image != catalog.PlaceholderImage {
		t.Errorf("image = %q, want placeholder", locked.Image)
	}

	open := gate.CardFor(premium, signedIn)
	if open.Locked || open.Description != premium.Description {
		t.Errorf("card = %+v, want full", open)
	}
}

func TestCardsReevaluateAfterLogout(t *testing.T) {
	prompts := []catalog.Prompt{free, premium}

	before := gate.Cards(prompts, signedIn)
	after := gate.Cards(prompts, anonymous)

	if before[1].Locked {
		t.Fatal("premium card locked while signed in")
	}
	if !after[1].Locked || after[1].Description != "" {
		t.Errorf("premium card after logout = %+v", after[1])
	}
	if after[0].Locked {
		t.Error("free card locked after logout")
	}
}
