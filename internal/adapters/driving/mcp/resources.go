package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pdfshelf/internal/core/services"
	"github.com/custodia-labs/pdfshelf/internal/format"
)

const (
	// uriScheme is the custom URI scheme for pdfshelf resources.
	uriScheme = "pdfshelf://"

	libraryURI      = uriScheme + "library"
	documentsPrefix = uriScheme + "documents/"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         libraryURI,
		Name:        "library",
		Description: "All PDF documents in the library in the default order",
		MIMEType:    "application/json",
	}, s.handleLibraryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: documentsPrefix + "{name}",
		Name:        "document",
		Description: "Metadata of a single PDF document",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

// handleLibraryResource returns the whole library as JSON.
func (s *Server) handleLibraryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records := s.ports.Presenter.Present(s.ports.Library.Discover(ctx), "", s.ports.DefaultSort)

	data, err := json.Marshal(format.Rows(records))
	if err != nil {
		return nil, fmt.Errorf("marshalling library: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentResource returns the metadata of one document.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractDocumentName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := services.FindRecord(s.ports.Library.Discover(ctx), name)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.Marshal(format.NewRow(record))
	if err != nil {
		return nil, fmt.Errorf("marshalling document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentName extracts the unescaped name from pdfshelf://documents/{name}.
func extractDocumentName(uri string) string {
	rest, ok := strings.CutPrefix(uri, documentsPrefix)
	if !ok || rest == "" {
		return ""
	}
	name, err := url.PathUnescape(rest)
	if err != nil {
		return ""
	}
	return name
}
