package driven

import (
	"context"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// SelectionKey is the persisted key holding the chosen root directory.
const SelectionKey = "pdf_viewer_storage_uri"

// SelectionStore persists at most one user-chosen root directory locator.
type SelectionStore interface {
	// Get returns the stored locator and true, or "" and false when absent.
	Get(ctx context.Context) (domain.Locator, bool, error)

	// Set stores loc, overwriting any previous value.
	Set(ctx context.Context, loc domain.Locator) error

	// Clear removes the stored locator. Clearing an absent value is not an error.
	Clear(ctx context.Context) error
}
