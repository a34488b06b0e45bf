// Package mcp provides an MCP (Model Context Protocol) server adapter for pdfshelf.
// It lets AI assistants list, prepare and delete the PDFs in the library.
package mcp

import "errors"

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("mcp: library service is required")

// ErrMissingPresenter is returned when the presenter is not provided.
var ErrMissingPresenter = errors.New("mcp: presenter is required")
