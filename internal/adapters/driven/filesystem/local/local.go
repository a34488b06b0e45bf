// Package local implements the file system port for direct-path locators.
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

// Ensure FileSystem implements the interface.
var _ driven.SchemeFileSystem = (*FileSystem)(nil)

// FileSystem reads and writes the host filesystem.
type FileSystem struct{}

// New creates a local file system adapter.
func New() *FileSystem {
	return &FileSystem{}
}

// Schemes returns the schemes handled by this adapter.
func (f *FileSystem) Schemes() []string {
	return []string{domain.SchemeFile}
}

// List returns the entries of dir. Symlinks are followed so that a link to
// a directory is listed as a directory. Entries that cannot be described
// are skipped.
func (f *FileSystem) List(ctx context.Context, dir domain.Locator) ([]domain.Entry, error) {
	path, err := localPath(dir)
	if err != nil {
		return nil, err
	}

	items, err := os.ReadDir(path)
	if err != nil {
		return nil, wrapPathError(dir, err)
	}

	entries := make([]domain.Entry, 0, len(items))
	for _, item := range items {
		if ctx.Err() != nil {
			return entries, ctx.Err()
		}

		childPath := filepath.Join(path, item.Name())
		info, err := os.Stat(childPath)
		if err != nil {
			logger.Debug("skipping %s: %v", childPath, err)
			continue
		}

		entry, ok := toEntry(childPath, info)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Stat describes loc.
func (f *FileSystem) Stat(_ context.Context, loc domain.Locator) (*domain.Entry, error) {
	path, err := localPath(loc)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, wrapPathError(loc, err)
	}
	entry, ok := toEntry(path, info)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a regular file or directory", domain.ErrInvalidInput, loc)
	}
	return &entry, nil
}

// CopyToPath copies src to dst, creating parent directories as needed.
func (f *FileSystem) CopyToPath(_ context.Context, src domain.Locator, dst string) error {
	path, err := localPath(src)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return wrapPathError(src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("copy %s: %w", src, domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}
	if err := copy.Copy(path, dst, copy.Options{Sync: true}); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// Remove deletes the file at loc.
func (f *FileSystem) Remove(_ context.Context, loc domain.Locator) error {
	path, err := localPath(loc)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return wrapPathError(loc, err)
	}
	return nil
}

func localPath(loc domain.Locator) (string, error) {
	path := loc.Path()
	if path == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedScheme, loc.Scheme())
	}
	return path, nil
}

func toEntry(path string, info fs.FileInfo) (domain.Entry, bool) {
	entry := domain.Entry{
		Locator: domain.FileLocator(path),
		Name:    norm.NFC.String(filepath.Base(path)),
		ModTime: info.ModTime(),
	}
	switch {
	case info.IsDir():
		entry.Kind = domain.EntryDirectory
	case info.Mode().IsRegular():
		entry.Kind = domain.EntryFile
		entry.Size = info.Size()
	default:
		return domain.Entry{}, false
	}
	return entry, true
}

func wrapPathError(loc domain.Locator, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, loc)
	}
	return fmt.Errorf("%s: %w", loc, err)
}
