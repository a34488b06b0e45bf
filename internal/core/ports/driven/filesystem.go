package driven

import (
	"context"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// FileSystem is the file-system capability consumed by discovery and file operations.
// Implementations must return errors wrapping domain.ErrNotFound when a
// locator does not resolve.
type FileSystem interface {
	// List returns the direct children of a directory locator.
	List(ctx context.Context, dir domain.Locator) ([]domain.Entry, error)

	// Stat describes a single locator.
	Stat(ctx context.Context, loc domain.Locator) (*domain.Entry, error)

	// CopyToPath copies the bytes behind src into the local path dst,
	// creating parent directories as needed.
	CopyToPath(ctx context.Context, src domain.Locator, dst string) error

	// Remove deletes the file behind loc.
	Remove(ctx context.Context, loc domain.Locator) error
}

// SchemeFileSystem is a FileSystem that serves a fixed set of locator schemes.
type SchemeFileSystem interface {
	FileSystem

	// Schemes returns the locator schemes this adapter handles.
	Schemes() []string
}
