// Package catalog holds the prompt catalog: the read-only record set loaded
// from a static source, and the pure query engine that filters and orders it.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PlaceholderImage is shown for prompts that carry no image reference.
const PlaceholderImage = "/placeholder.svg"

// Prompt is one catalog record. Field names follow the static data file.
type Prompt struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	IsPremium   bool   `json:"isPremium"`
}

// ImageOrPlaceholder returns Image, or PlaceholderImage when empty.
func (p Prompt) ImageOrPlaceholder() string {
	if p.Image == "" {
		return PlaceholderImage
	}
	return p.Image
}

// Decode parses a catalog document. The whole document is rejected if any
// record lacks a name or repeats an id.
func Decode(data []byte) ([]Prompt, error) {
	var prompts []Prompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[int]struct{}, len(prompts))
	for i, p := range prompts {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("record %d (id %d): name required", i, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	if prompts == nil {
		prompts = []Prompt{}
	}
	return prompts, nil
}

// Categories returns the distinct categories of catalog in first-seen order.
func Categories(catalog []Prompt) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)

	for _, p := range catalog {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}

	return categories
}

// Find returns the record with the given id.
func Find(catalog []Prompt, id int) (Prompt, error) {
	for _, p := range catalog {
		if p.ID == id {
			return p, nil
		}
	}
	return Prompt{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}
