// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLibrary is the document list.
	ViewLibrary ViewType = iota
	// ViewViewer is the single-document hand-off screen.
	ViewViewer
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLibrary:
		return "library"
	case ViewViewer:
		return "viewer"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// LibraryLoaded carries the result of a discovery pass.
type LibraryLoaded struct {
	Records []domain.FileRecord
}

// LibraryChanged is sent by the watcher when a root changed on disk.
type LibraryChanged struct{}

// ReloadRequested asks the library view to rescan.
type ReloadRequested struct{}

// DocumentPrepared is sent when an open request finished preparing a record.
type DocumentPrepared struct {
	Record  domain.FileRecord
	Locator domain.Locator
	Err     error
}

// DocumentInspected carries the existence check made by the viewer.
type DocumentInspected struct {
	Locator domain.Locator
	Entry   *domain.Entry
	Err     error
}

// HandOffCompleted is sent after the prepared copy went to the external viewer.
type HandOffCompleted struct {
	Err error
}

// DocumentShared is sent after a share request.
type DocumentShared struct {
	Name string
	Err  error
}

// DocumentDeleted reports the outcome of a confirmed delete.
type DocumentDeleted struct {
	Record domain.FileRecord
	OK     bool
}

// DocumentImported carries the picker result. A nil record means cancelled.
type DocumentImported struct {
	Record *domain.FileRecord
	Err    error
}

// DirectoryChosen reports the outcome of a folder selection.
type DirectoryChosen struct {
	Locator domain.Locator
	Err     error
}

// ErrorOccurred is sent when an error should be displayed.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
