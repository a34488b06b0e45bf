package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/services"
	"github.com/custodia-labs/pdfshelf/internal/format"
)

// ListInput is the input schema for the list_pdfs tool.
type ListInput struct {
	Query string `json:"query,omitempty" jsonschema:"case-insensitive substring to filter file names by"`
	Sort  string `json:"sort,omitempty" jsonschema:"one of name-asc, name-desc, date-desc, date-asc, size-desc, size-asc"`
}

// ListOutput is the output schema for the list_pdfs tool.
type ListOutput struct {
	Documents []format.Row `json:"documents"`
	Count     int          `json:"count"`
}

// DocumentInput identifies one document by name or locator.
type DocumentInput struct {
	Name string `json:"name" jsonschema:"file name or locator of the document"`
}

// PrepareOutput is the output schema for the prepare_pdf tool.
type PrepareOutput struct {
	Locator string `json:"locator"`
	Path    string `json:"path"`
}

// DeleteOutput is the output schema for the delete_pdf tool.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	Name    string `json:"name"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_pdfs",
		Description: "List the PDF documents in the library, optionally filtered and sorted",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "prepare_pdf",
		Description: "Make a PDF readable from a local path and return that path",
	}, s.handlePrepare)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_pdf",
		Description: "Delete a PDF from the library",
	}, s.handleDelete)
}

// handleList handles the list_pdfs tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	spec := s.ports.DefaultSort
	if input.Sort != "" {
		parsed, err := domain.ParseSortSpec(input.Sort)
		if err != nil {
			return nil, ListOutput{}, err
		}
		spec = parsed
	}

	records := s.ports.Presenter.Present(s.ports.Library.Discover(ctx), input.Query, spec)

	return nil, ListOutput{
		Documents: format.Rows(records),
		Count:     len(records),
	}, nil
}

// handlePrepare handles the prepare_pdf tool invocation.
func (s *Server) handlePrepare(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, PrepareOutput, error) {
	record, err := s.find(ctx, input.Name)
	if err != nil {
		return nil, PrepareOutput{}, err
	}

	loc, err := s.ports.Library.PrepareForViewing(ctx, record)
	if err != nil {
		return nil, PrepareOutput{}, err
	}

	return nil, PrepareOutput{Locator: loc.String(), Path: loc.Path()}, nil
}

// handleDelete handles the delete_pdf tool invocation.
func (s *Server) handleDelete(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, DeleteOutput, error) {
	record, err := s.find(ctx, input.Name)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	if !s.ports.Library.Delete(ctx, record) {
		return nil, DeleteOutput{Name: record.Name}, fmt.Errorf("deleting %s: %w", record.Name, domain.ErrDeleteFailed)
	}
	return nil, DeleteOutput{Deleted: true, Name: record.Name}, nil
}

func (s *Server) find(ctx context.Context, ref string) (domain.FileRecord, error) {
	return services.FindRecord(s.ports.Library.Discover(ctx), ref)
}
