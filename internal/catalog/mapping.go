package catalog

import (
	"net/url"
	"strings"
)

// QueryStateFromValues parses search, category, and sort query parameters.
// Each category parameter names one category verbatim, so names may
// contain commas; repeat the parameter to select several. Blank values
// are ignored.
func QueryStateFromValues(values url.Values) (QueryState, error) {
	sort, err := ParseSortOrder(values.Get("sort"))
	if err != nil {
		return QueryState{}, err
	}

	var categories []string
	for _, c := range values["category"] {
		if strings.TrimSpace(c) != "" {
			categories = append(categories, c)
		}
	}

	return QueryState{
		SearchTerm: values.Get("search"),
		Categories: categories,
		Sort:       sort,
	}, nil
}
