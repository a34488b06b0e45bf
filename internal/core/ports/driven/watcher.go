package driven

import (
	"context"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// Watcher reports that something under a set of roots changed.
type Watcher interface {
	// Watch emits one value per (throttled) change until ctx is cancelled.
	// Roots that cannot be watched are skipped.
	Watch(ctx context.Context, roots []domain.Locator) (<-chan struct{}, error)
}
