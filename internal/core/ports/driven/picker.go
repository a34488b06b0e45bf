package driven

import (
	"context"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// DocumentPicker runs a document-choice interaction.
type DocumentPicker interface {
	// Pick returns the chosen document, or nil with a nil error when the
	// user cancelled.
	Pick(ctx context.Context) (*domain.PickedDocument, error)
}
