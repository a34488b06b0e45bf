package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driving"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

// Ensure FolderService implements the interface.
var _ driving.FolderService = (*FolderService)(nil)

// FolderService manages the persisted scan directory.
type FolderService struct {
	fs        driven.FileSystem
	platform  driven.Platform
	selection driven.SelectionStore
}

// NewFolderService creates a new folder service.
func NewFolderService(fs driven.FileSystem, platform driven.Platform, selection driven.SelectionStore) *FolderService {
	return &FolderService{fs: fs, platform: platform, selection: selection}
}

// SupportsDirectoryChoice reports whether the platform scans a chosen directory.
func (s *FolderService) SupportsDirectoryChoice() bool {
	return s.platform.SupportsUserDirectoryChoice() && s.selection != nil
}

// ChooseDirectory validates dir and persists it.
func (s *FolderService) ChooseDirectory(ctx context.Context, dir domain.Locator) error {
	if !s.SupportsDirectoryChoice() {
		return domain.ErrDirectoryChoiceUnsupported
	}
	if dir == "" {
		return fmt.Errorf("%w: directory is required", domain.ErrInvalidInput)
	}

	entry, err := s.fs.Stat(ctx, dir)
	if err != nil {
		return fmt.Errorf("choose directory %s: %w", dir, err)
	}
	if !entry.IsDir() {
		return fmt.Errorf("choose directory %s: %w", dir, domain.ErrNotDirectory)
	}

	if err := s.selection.Set(ctx, dir); err != nil {
		return fmt.Errorf("save directory: %w", err)
	}
	logger.Info("scan directory set to %s", dir)
	return nil
}

// CurrentDirectory returns the persisted directory, if any.
func (s *FolderService) CurrentDirectory(ctx context.Context) (domain.Locator, bool, error) {
	if s.selection == nil {
		return "", false, nil
	}
	return s.selection.Get(ctx)
}

// ClearDirectory forgets the persisted directory.
func (s *FolderService) ClearDirectory(ctx context.Context) error {
	if s.selection == nil {
		return domain.ErrDirectoryChoiceUnsupported
	}
	return s.selection.Clear(ctx)
}
