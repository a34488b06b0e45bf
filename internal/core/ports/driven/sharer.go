package driven

import (
	"context"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// ShareSheet hands a document to an external viewer or share target.
type ShareSheet interface {
	// Available reports whether sharing can be performed on this machine.
	Available(ctx context.Context) bool

	// Share hands the local file behind loc to the external target.
	Share(ctx context.Context, loc domain.Locator, opts domain.ShareOptions) error
}
