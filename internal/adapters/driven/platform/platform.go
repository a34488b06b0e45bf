// Package platform provides the two host variants: a desktop "directory"
// host that scans one user-chosen folder, and a "sandbox" host that scans
// its own document and cache areas.
package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
)

// Layout directory names under the data directory.
const (
	DocumentsDir = "documents"
	CacheDir     = "cache"
	PickerDir    = "DocumentPicker"
)

// Areas are the local directories a platform writes to.
type Areas struct {
	Documents string
	Cache     string
	Picker    string
}

// NewAreas derives the standard layout under dataDir and creates it.
func NewAreas(dataDir string) (Areas, error) {
	areas := Areas{
		Documents: filepath.Join(dataDir, DocumentsDir),
		Cache:     filepath.Join(dataDir, CacheDir),
		Picker:    filepath.Join(dataDir, CacheDir, PickerDir),
	}
	for _, dir := range []string{areas.Documents, areas.Cache, areas.Picker} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return Areas{}, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return areas, nil
}

// New returns the platform for mode.
func New(mode domain.PlatformMode, areas Areas, selection driven.SelectionStore) (driven.Platform, error) {
	switch mode {
	case domain.PlatformDirectory:
		return NewDirectory(areas, selection), nil
	case domain.PlatformSandbox:
		return NewSandbox(areas), nil
	default:
		return nil, fmt.Errorf("%w: platform mode %q", domain.ErrInvalidInput, mode)
	}
}

// Directory scans the directory persisted in the selection store.
type Directory struct {
	areas     Areas
	selection driven.SelectionStore
}

var _ driven.Platform = (*Directory)(nil)

// NewDirectory creates a directory platform.
func NewDirectory(areas Areas, selection driven.SelectionStore) *Directory {
	return &Directory{areas: areas, selection: selection}
}

// Mode returns PlatformDirectory.
func (p *Directory) Mode() domain.PlatformMode { return domain.PlatformDirectory }

// ListRoots returns the stored directory, or nothing when none is chosen.
func (p *Directory) ListRoots(ctx context.Context) ([]domain.Locator, error) {
	if p.selection == nil {
		return nil, nil
	}
	loc, ok, err := p.selection.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading saved directory: %w", err)
	}
	if !ok || loc == "" {
		return nil, nil
	}
	return []domain.Locator{loc}, nil
}

// SupportsUserDirectoryChoice returns true.
func (p *Directory) SupportsUserDirectoryChoice() bool { return true }

// RetainsPickedFiles returns true: picked files stay where the user keeps them.
func (p *Directory) RetainsPickedFiles() bool { return true }

// DocumentArea returns the documents directory.
func (p *Directory) DocumentArea() string { return p.areas.Documents }

// CacheArea returns the cache directory.
func (p *Directory) CacheArea() string { return p.areas.Cache }

// PickerArea returns the transient picker staging directory.
func (p *Directory) PickerArea() string { return p.areas.Picker }

// Sandbox scans its own documents and cache areas.
type Sandbox struct {
	areas Areas
}

var _ driven.Platform = (*Sandbox)(nil)

// NewSandbox creates a sandbox platform.
func NewSandbox(areas Areas) *Sandbox {
	return &Sandbox{areas: areas}
}

// Mode returns PlatformSandbox.
func (p *Sandbox) Mode() domain.PlatformMode { return domain.PlatformSandbox }

// ListRoots returns the documents and cache areas.
func (p *Sandbox) ListRoots(_ context.Context) ([]domain.Locator, error) {
	return []domain.Locator{
		domain.FileLocator(p.areas.Documents),
		domain.FileLocator(p.areas.Cache),
	}, nil
}

// SupportsUserDirectoryChoice returns false.
func (p *Sandbox) SupportsUserDirectoryChoice() bool { return false }

// RetainsPickedFiles returns false: picks are imported into the document area.
func (p *Sandbox) RetainsPickedFiles() bool { return false }

// DocumentArea returns the documents directory.
func (p *Sandbox) DocumentArea() string { return p.areas.Documents }

// CacheArea returns the cache directory.
func (p *Sandbox) CacheArea() string { return p.areas.Cache }

// PickerArea returns the transient picker staging directory.
func (p *Sandbox) PickerArea() string { return p.areas.Picker }
