// Package tui provides the interactive terminal library for pdfshelf.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/views/library"
	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driving"
)

// RootLister reports the roots the watcher should observe.
type RootLister interface {
	ListRoots(ctx context.Context) ([]domain.Locator, error)
}

// Ports aggregates the services the TUI drives.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library discovers and operates on documents.
	Library driving.LibraryService

	// Folder manages the scanned directory. Optional.
	Folder driving.FolderService

	// Presenter filters and sorts the list.
	Presenter driving.Presenter

	// Picks feeds paths to the terminal document picker. Optional.
	Picks library.PathQueue

	// Watcher triggers rescans on change. Optional; requires Roots.
	Watcher driven.Watcher

	// Roots lists what the watcher observes.
	Roots RootLister

	// DefaultSort is the initial order.
	DefaultSort domain.SortSpec
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Presenter == nil {
		return ErrMissingPresenter
	}
	return nil
}

// watching reports whether watch mode can run.
func (p *Ports) watching() bool {
	return p.Watcher != nil && p.Roots != nil
}
