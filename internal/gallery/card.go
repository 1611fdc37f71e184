// Package gallery composes the catalog, the session gate, and favorites
// into the cards a client renders.
package gallery

import (
	"github.com/Tonn-hash/galeria-de-prompts/internal/catalog"
	"github.com/Tonn-hash/galeria-de-prompts/internal/gate"
	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
)

// Card is a gated prompt decorated with the viewer's favorite mark.
type Card struct {
	gate.Card
	Favorite bool `json:"favorite"`
}

// Render gates every record for state and marks favorites. isFavorite may
// be nil; anonymous viewers never have favorites.
func Render(records []catalog.Prompt, state session.State, isFavorite func(int) bool) []Card {
	cards := make([]Card, len(records))
	for i, p := range records {
		cards[i] = Card{
			Card:     gate.CardFor(p, state),
			Favorite: state.Authenticated && isFavorite != nil && isFavorite(p.ID),
		}
	}
	return cards
}
