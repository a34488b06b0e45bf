package services

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driving"
)

// Ensure Presenter implements the interface.
var _ driving.Presenter = (*Presenter)(nil)

// Presenter filters and sorts record lists for display.
// It is stateless apart from the collation locale.
type Presenter struct {
	locale language.Tag
}

// NewPresenter creates a presenter comparing names under locale.
// An unparseable locale falls back to English.
func NewPresenter(locale string) *Presenter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Presenter{locale: tag}
}

// Present returns a new slice holding the records matching query in spec order.
func (p *Presenter) Present(records []domain.FileRecord, query string, spec domain.SortSpec) []domain.FileRecord {
	result := Filter(records, query)
	p.Sort(result, spec)
	return result
}

// Sort orders records in place.
func (p *Presenter) Sort(records []domain.FileRecord, spec domain.SortSpec) {
	less := p.comparator(spec)
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}

// comparator returns the less function for spec. A collator is not safe
// for concurrent use, so each call builds its own.
func (p *Presenter) comparator(spec domain.SortSpec) func(a, b domain.FileRecord) bool {
	names := collate.New(p.locale)

	switch spec {
	case domain.SortNameAsc:
		return func(a, b domain.FileRecord) bool { return names.CompareString(a.Name, b.Name) < 0 }
	case domain.SortNameDesc:
		return func(a, b domain.FileRecord) bool { return names.CompareString(b.Name, a.Name) < 0 }
	case domain.SortDateAsc:
		return func(a, b domain.FileRecord) bool { return a.ModifiedMillis() < b.ModifiedMillis() }
	case domain.SortSizeDesc:
		return func(a, b domain.FileRecord) bool { return b.Size < a.Size }
	case domain.SortSizeAsc:
		return func(a, b domain.FileRecord) bool { return a.Size < b.Size }
	case domain.SortDateDesc:
		return func(a, b domain.FileRecord) bool { return b.ModifiedMillis() < a.ModifiedMillis() }
	default:
		return func(a, b domain.FileRecord) bool { return b.ModifiedMillis() < a.ModifiedMillis() }
	}
}

// Filter returns the records whose name contains query, ignoring case.
// A blank query matches everything. The input slice is never modified.
func Filter(records []domain.FileRecord, query string) []domain.FileRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	result := make([]domain.FileRecord, 0, len(records))
	for _, record := range records {
		if query == "" || strings.Contains(strings.ToLower(record.Name), query) {
			result = append(result, record)
		}
	}
	return result
}
