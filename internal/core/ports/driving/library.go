package driving

import (
	"context"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// LibraryService discovers documents and performs file operations on them.
type LibraryService interface {
	// Discover scans the platform roots and returns deduplicated records.
	// It never fails: unexpected problems are logged and yield an empty list.
	Discover(ctx context.Context) []domain.FileRecord

	// Import runs the document picker. A nil record with a nil error means
	// the user cancelled.
	Import(ctx context.Context) (*domain.FileRecord, error)

	// PrepareForViewing returns a locator the external viewer can open.
	PrepareForViewing(ctx context.Context, record domain.FileRecord) (domain.Locator, error)

	// Share hands the record to the share sheet. It is a no-op when sharing
	// is unavailable.
	Share(ctx context.Context, record domain.FileRecord) error

	// Open prepares the record and hands the prepared copy to the share sheet.
	// Unlike Share it reports ErrShareUnavailable.
	Open(ctx context.Context, record domain.FileRecord) (domain.Locator, error)

	// HandOff passes an already prepared locator to the external viewer.
	// It reports ErrShareUnavailable when no share target exists.
	HandOff(ctx context.Context, loc domain.Locator, title string) error

	// Delete removes the underlying file. It reports false when nothing was
	// deleted, including when the file was already gone.
	Delete(ctx context.Context, record domain.FileRecord) bool

	// Inspect stats a locator for the hand-off screen.
	Inspect(ctx context.Context, loc domain.Locator) (*domain.Entry, error)

	// ShareAvailable reports whether a share target exists.
	ShareAvailable(ctx context.Context) bool
}

// FolderService manages the user-chosen scan directory.
type FolderService interface {
	// SupportsDirectoryChoice reports whether the active platform scans a chosen directory.
	SupportsDirectoryChoice() bool

	// ChooseDirectory validates dir and persists it as the scan root.
	ChooseDirectory(ctx context.Context, dir domain.Locator) error

	// CurrentDirectory returns the persisted root, if any.
	CurrentDirectory(ctx context.Context) (domain.Locator, bool, error)

	// ClearDirectory forgets the persisted root.
	ClearDirectory(ctx context.Context) error
}

// Presenter filters and orders a record list for display.
type Presenter interface {
	// Present returns a new slice holding the records matching query in spec order.
	Present(records []domain.FileRecord, query string, spec domain.SortSpec) []domain.FileRecord
}
