// Package gate decides how much of a prompt a session may see.
//
// Every function re-evaluates the rule from its arguments; nothing derived
// from an earlier session is retained between calls.
package gate

import (
	"github.com/Tonn-hash/galeria-de-prompts/internal/catalog"
	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
)

// Visibility is the access tier of a prompt for a given session.
type Visibility string

const (
	Full   Visibility = "FULL"
	Locked Visibility = "LOCKED"
)

// Evaluate returns Locked iff the prompt is premium and the session is
// anonymous.
func Evaluate(p catalog.Prompt, state session.State) Visibility {
	if p.IsPremium && !state.Authenticated {
		return Locked
	}
	return Full
}

// Reveal returns the prompt text for the detail view.
func Reveal(p catalog.Prompt, state session.State) (string, error) {
	return text(p, state)
}

// Copy returns the prompt text for the copy-to-clipboard action.
func Copy(p catalog.Prompt, state session.State) (string, error) {
	return text(p, state)
}

func text(p catalog.Prompt, state session.State) (string, error) {
	if Evaluate(p, state) == Locked {
		return "", session.ErrAuthenticationRequired
	}
	return p.Description, nil
}

// Card is the renderable projection of a prompt. Locked cards never carry
// the description.
type Card struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Category    string     `json:"category"`
	IsPremium   bool       `json:"isPremium"`
	Visibility  Visibility `json:"visibility"`
	Locked      bool       `json:"locked"`
}

// CardFor projects p for state.
func CardFor(p catalog.Prompt, state session.State) Card {
	v := Evaluate(p, state)
	card := Card{
		ID:         p.ID,
		Name:       p.Name,
		Image:      p.ImageOrPlaceholder(),
		Category:   p.Category,
		IsPremium:  p.IsPremium,
		Visibility: v,
		Locked:     v == Locked,
	}
	if v == Full {
		card.Description = p.Description
	}
	return card
}

// Cards projects every prompt in order.
func Cards(prompts []catalog.Prompt, state session.State) []Card {
	cards := make([]Card, len(prompts))
	for i, p := range prompts {
		cards[i] = CardFor(p, state)
	}
	return cards
}
