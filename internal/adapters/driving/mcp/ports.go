package mcp

import (
	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library discovers documents and performs file operations.
	Library driving.LibraryService

	// Presenter filters and sorts document lists.
	Presenter driving.Presenter

	// DefaultSort applies when a caller does not name one.
	DefaultSort domain.SortSpec
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Presenter == nil {
		return ErrMissingPresenter
	}
	return nil
}
