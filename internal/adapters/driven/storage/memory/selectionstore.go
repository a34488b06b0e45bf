package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
)

// Ensure SelectionStore implements the interface.
var _ driven.SelectionStore = (*SelectionStore)(nil)

// SelectionStore is an in-memory implementation of driven.SelectionStore.
// Used for tests and for the "memory" store backend.
type SelectionStore struct {
	mu    sync.RWMutex
	value domain.Locator
	set   bool
}

// NewSelectionStore creates a new in-memory selection store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{}
}

// Get returns the stored locator.
func (s *SelectionStore) Get(_ context.Context) (domain.Locator, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.set, nil
}

// Set stores the locator.
func (s *SelectionStore) Set(_ context.Context, loc domain.Locator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = loc
	s.set = true
	return nil
}

// Clear forgets the stored locator.
func (s *SelectionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	s.set = false
	return nil
}
