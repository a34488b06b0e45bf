package mcp

import (
	"context"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	records  []domain.FileRecord
	prepared domain.Locator
	err      error
	deleted  []domain.FileRecord
	deleteOK bool
}

func (m *mockLibraryService) Discover(_ context.Context) []domain.FileRecord {
	return m.records
}

func (m *mockLibraryService) Import(_ context.Context) (*domain.FileRecord, error) {
	return nil, m.err
}

func (m *mockLibraryService) PrepareForViewing(_ context.Context, r domain.FileRecord) (domain.Locator, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.prepared != "" {
		return m.prepared, nil
	}
	return r.Locator, nil
}

func (m *mockLibraryService) Share(_ context.Context, _ domain.FileRecord) error {
	return m.err
}

func (m *mockLibraryService) Open(_ context.Context, r domain.FileRecord) (domain.Locator, error) {
	return r.Locator, m.err
}

func (m *mockLibraryService) HandOff(_ context.Context, _ domain.Locator, _ string) error {
	return m.err
}

func (m *mockLibraryService) Delete(_ context.Context, r domain.FileRecord) bool {
	m.deleted = append(m.deleted, r)
	return m.deleteOK
}

func (m *mockLibraryService) Inspect(_ context.Context, loc domain.Locator) (*domain.Entry, error) {
	return &domain.Entry{Kind: domain.EntryFile, Locator: loc}, m.err
}

func (m *mockLibraryService) ShareAvailable(_ context.Context) bool {
	return m.err == nil
}
