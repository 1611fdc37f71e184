package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// QueryState is the user's current search, category selection, and sort.
type QueryState struct {
	SearchTerm string    `json:"search"`
	Categories []string  `json:"categories"`
	Sort       SortOrder `json:"sort"`
}

// Engine evaluates queries with a fixed collation locale. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	locale language.Tag
}

// NewEngine creates an Engine that orders names under locale.
func NewEngine(locale language.Tag) *Engine {
	return &Engine{locale: locale}
}

// Locale returns the collation locale.
func (e *Engine) Locale() language.Tag {
	return e.locale
}

var rootEngine = NewEngine(language.Und)

// Query evaluates state against catalog using root collation.
func Query(catalog []Prompt, state QueryState) []Prompt {
	return rootEngine.Query(catalog, state)
}

// Query runs search, then category, then sort over catalog and returns a
// new slice. The input is never modified and every result is an input
// record.
//
// Search keeps records whose case-folded name or description contains the
// case-folded term. Categories keep records whose category is selected.
// Empty terms and empty selections match everything.
func (e *Engine) Query(catalog []Prompt, state QueryState) []Prompt {
	result := make([]Prompt, 0, len(catalog))

	// Caser and Collator buffer internally, so each call gets its own.
	fold := cases.Fold()
	term := fold.String(state.SearchTerm)

	selected := make(map[string]struct{}, len(state.Categories))
	for _, c := range state.Categories {
		selected[c] = struct{}{}
	}

	for _, p := range catalog {
		if term != "" &&
			!strings.Contains(fold.String(p.Name), term) &&
			!strings.Contains(fold.String(p.Description), term) {
			continue
		}
		if len(selected) > 0 {
			if _, ok := selected[p.Category]; !ok {
				continue
			}
		}
		result = append(result, p)
	}

	switch state.Sort {
	case SortAscending:
		e.sortByName(result)
	case SortDescending:
		e.sortByName(result)
		slices.Reverse(result)
	}

	return result
}

func (e *Engine) sortByName(prompts []Prompt) {
	col := collate.New(e.locale)
	slices.SortStableFunc(prompts, func(a, b Prompt) int {
		return col.CompareString(a.Name, b.Name)
	})
}
