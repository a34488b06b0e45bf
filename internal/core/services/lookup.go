package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// FindRecord resolves ref against records. ref may be a locator, an exact
// name, or a name differing only in case. A name shared by several records
// is ambiguous and must be given as a locator.
func FindRecord(records []domain.FileRecord, ref string) (domain.FileRecord, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.FileRecord{}, fmt.Errorf("%w: document name is required", domain.ErrInvalidInput)
	}

	var exact, folded []domain.FileRecord
	for _, r := range records {
		switch {
		case r.Locator.String() == ref || r.ID == ref:
			return r, nil
		case r.Name == ref:
			exact = append(exact, r)
		case strings.EqualFold(r.Name, ref):
			folded = append(folded, r)
		}
	}

	matches := exact
	if len(matches) == 0 {
		matches = folded
	}
	switch len(matches) {
	case 0:
		return domain.FileRecord{}, fmt.Errorf("%w: no document named %q", domain.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return domain.FileRecord{}, fmt.Errorf("%w: %d documents named %q, use a locator", domain.ErrInvalidInput, len(matches), ref)
	}
}
