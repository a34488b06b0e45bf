package driven

import (
	"context"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// Platform captures every behaviour that differs between the two
// supported root policies. It is chosen once at startup.
type Platform interface {
	// Mode identifies the variant.
	Mode() domain.PlatformMode

	// ListRoots returns the directories discovery should scan.
	ListRoots(ctx context.Context) ([]domain.Locator, error)

	// SupportsUserDirectoryChoice reports whether roots come from the SelectionStore.
	SupportsUserDirectoryChoice() bool

	// RetainsPickedFiles reports whether files chosen through the picker stay
	// readable after the pick. When false, imports are copied into DocumentArea.
	RetainsPickedFiles() bool

	// DocumentArea is the app-owned persistent directory.
	DocumentArea() string

	// CacheArea is the app-owned cache directory used for prepared copies.
	CacheArea() string

	// PickerArea is the transient directory the picker stages files into.
	PickerArea() string
}
