package catalog

import (
	"encoding/json"
	"strings"
)

// SortOrder selects the ordering applied after filtering.
type SortOrder string

const (
	// SortDefault keeps catalog order.
	SortDefault SortOrder = "default"
	// SortAscending orders by name under locale collation.
	SortAscending SortOrder = "asc"
	// SortDescending is the exact reverse of SortAscending.
	SortDescending SortOrder = "desc"
)

var sortAliases = map[string]SortOrder{
	"":           SortDefault,
	"default":    SortDefault,
	"asc":        SortAscending,
	"ascending":  SortAscending,
	"desc":       SortDescending,
	"descending": SortDescending,
}

// ParseSortOrder accepts default/asc/desc and their long forms, case-insensitively.
// An empty string is SortDefault.
func ParseSortOrder(s string) (SortOrder, error) {
	order, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrInvalidSort
	}
	return order, nil
}

// UnmarshalJSON parses the order through ParseSortOrder.
func (s *SortOrder) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	order, err := ParseSortOrder(raw)
	if err != nil {
		return err
	}
	*s = order
	return nil
}
