package domain

import (
	"fmt"
	"strings"
)

// SortSpec selects one of the six total orderings over FileRecord.
type SortSpec int

const (
	// SortDateDesc orders newest first. It is the default.
	SortDateDesc SortSpec = iota
	SortDateAsc
	SortNameAsc
	SortNameDesc
	SortSizeDesc
	SortSizeAsc
)

// DefaultSort is the ordering used until the user picks another one.
const DefaultSort = SortDateDesc

// AllSortSpecs lists every ordering in menu order.
func AllSortSpecs() []SortSpec {
	return []SortSpec{SortNameAsc, SortNameDesc, SortDateDesc, SortDateAsc, SortSizeDesc, SortSizeAsc}
}

// Valid reports whether s is one of the six orderings.
func (s SortSpec) Valid() bool {
	return s >= SortDateDesc && s <= SortSizeAsc
}

// String returns the flag/config spelling of the ordering.
func (s SortSpec) String() string {
	switch s {
	case SortNameAsc:
		return "name-asc"
	case SortNameDesc:
		return "name-desc"
	case SortDateDesc:
		return "date-desc"
	case SortDateAsc:
		return "date-asc"
	case SortSizeDesc:
		return "size-desc"
	case SortSizeAsc:
		return "size-asc"
	default:
		return "unknown"
	}
}

// Label returns the human-readable menu label.
func (s SortSpec) Label() string {
	switch s {
	case SortNameAsc:
		return "Name (A-Z)"
	case SortNameDesc:
		return "Name (Z-A)"
	case SortDateDesc:
		return "Date (Newest First)"
	case SortDateAsc:
		return "Date (Oldest First)"
	case SortSizeDesc:
		return "Size (Largest First)"
	case SortSizeAsc:
		return "Size (Smallest First)"
	default:
		return "Unknown"
	}
}

// ParseSortSpec parses the String form. Empty input yields DefaultSort.
func ParseSortSpec(s string) (SortSpec, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultSort, nil
	}
	for _, spec := range AllSortSpecs() {
		if spec.String() == s {
			return spec, nil
		}
	}
	return DefaultSort, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, s)
}
