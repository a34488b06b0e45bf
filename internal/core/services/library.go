package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driving"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeName replaces every character outside [a-zA-Z0-9._-] with '_'.
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// LibraryService implements the library operations on top of the driven ports.
type LibraryService struct {
	engine   *DiscoveryEngine
	fs       driven.FileSystem
	platform driven.Platform
	picker   driven.DocumentPicker
	sharer   driven.ShareSheet
	prepare  singleflight.Group
	now      func() time.Time
}

// NewLibraryService creates a new library service.
// picker and sharer may be nil when the host offers neither.
func NewLibraryService(
	engine *DiscoveryEngine,
	fs driven.FileSystem,
	platform driven.Platform,
	picker driven.DocumentPicker,
	sharer driven.ShareSheet,
) *LibraryService {
	return &LibraryService{
		engine:   engine,
		fs:       fs,
		platform: platform,
		picker:   picker,
		sharer:   sharer,
		now:      time.Now,
	}
}

// Discover scans the platform roots and returns deduplicated records.
func (s *LibraryService) Discover(ctx context.Context) []domain.FileRecord {
	return Deduplicate(s.engine.Scan(ctx))
}

// Import runs the picker. On platforms that do not retain picked files the
// pick is copied into the document area first.
func (s *LibraryService) Import(ctx context.Context) (*domain.FileRecord, error) {
	if s.picker == nil {
		return nil, domain.ErrPickerUnavailable
	}

	picked, err := s.picker.Pick(ctx)
	if err != nil {
		return nil, fmt.Errorf("pick document: %w", err)
	}
	if picked == nil {
		logger.Debug("document pick cancelled")
		return nil, nil
	}

	if s.platform.RetainsPickedFiles() {
		return &domain.FileRecord{
			ID:         picked.Locator.String(),
			Name:       picked.Name,
			Size:       picked.Size,
			ModifiedAt: s.now(),
			Locator:    picked.Locator,
		}, nil
	}

	name := filepath.Base(picked.Name)
	dest := filepath.Join(s.platform.DocumentArea(), name)
	if err := s.fs.CopyToPath(ctx, picked.Locator, dest); err != nil {
		return nil, fmt.Errorf("import %s: %w", name, err)
	}

	loc := domain.FileLocator(dest)
	size := picked.Size
	if entry, err := s.fs.Stat(ctx, loc); err == nil {
		size = entry.Size
	}
	logger.Info("imported %s into %s", name, s.platform.DocumentArea())

	return &domain.FileRecord{
		ID:         loc.String(),
		Name:       name,
		Size:       size,
		ModifiedAt: s.now(),
		Locator:    loc,
	}, nil
}

// PrepareForViewing returns a direct-path locator outside the transient
// picker area. Other records are copied into the cache area under their
// sanitised name; an existing cached copy is reused. Concurrent calls for
// the same name share one copy.
func (s *LibraryService) PrepareForViewing(ctx context.Context, record domain.FileRecord) (domain.Locator, error) {
	loc := record.Locator
	if loc.IsDirectPath() && !s.inPickerArea(loc) {
		return loc, nil
	}

	name := record.Name
	if name == "" {
		name = loc.Base()
	}
	name = SanitizeName(name)
	dest := filepath.Join(s.platform.CacheArea(), name)

	v, err, shared := s.prepare.Do(dest, func() (any, error) {
		cached := domain.FileLocator(dest)
		if entry, err := s.fs.Stat(ctx, cached); err == nil && !entry.IsDir() {
			logger.Debug("using cached copy %s", dest)
			return cached, nil
		}

		if err := s.fs.CopyToPath(ctx, loc, dest); err != nil {
			return domain.Locator(""), fmt.Errorf("%w: %s: %v", domain.ErrPreparationFailed, loc, err)
		}
		logger.Debug("prepared %s for viewing at %s", loc, dest)
		return cached, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		logger.Debug("joined in-flight preparation of %s", name)
	}
	return v.(domain.Locator), nil
}

func (s *LibraryService) inPickerArea(loc domain.Locator) bool {
	area := s.platform.PickerArea()
	return area != "" && loc.Within(domain.FileLocator(area))
}

// Share hands the record to the share sheet. Indirect locators are prepared
// first so the receiver gets a readable file.
func (s *LibraryService) Share(ctx context.Context, record domain.FileRecord) error {
	if !s.ShareAvailable(ctx) {
		logger.Info("sharing is not available, skipping %s", record.Name)
		return nil
	}

	loc := record.Locator
	if !loc.IsDirectPath() {
		prepared, err := s.PrepareForViewing(ctx, record)
		if err != nil {
			return err
		}
		loc = prepared
	}

	return s.sharer.Share(ctx, loc, domain.ShareOptions{
		MIMEType: domain.PDFMIMEType,
		Title:    "Share " + record.Name,
	})
}

// Open prepares the record and hands the prepared copy to the viewer.
func (s *LibraryService) Open(ctx context.Context, record domain.FileRecord) (domain.Locator, error) {
	prepared, err := s.PrepareForViewing(ctx, record)
	if err != nil {
		return "", err
	}
	return prepared, s.HandOff(ctx, prepared, record.Name)
}

// HandOff passes a prepared locator to the share sheet.
func (s *LibraryService) HandOff(ctx context.Context, loc domain.Locator, title string) error {
	if !s.ShareAvailable(ctx) {
		return domain.ErrShareUnavailable
	}
	if err := s.sharer.Share(ctx, loc, domain.ShareOptions{MIMEType: domain.PDFMIMEType, Title: title}); err != nil {
		return fmt.Errorf("open %s: %w", title, err)
	}
	return nil
}

// Delete removes the record's file. A file that is already gone reports false.
func (s *LibraryService) Delete(ctx context.Context, record domain.FileRecord) bool {
	if _, err := s.fs.Stat(ctx, record.Locator); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("file not found, nothing to delete: %s", record.Locator)
		} else {
			logger.Error("deleting %s: %v", record.Name, err)
		}
		return false
	}

	if err := s.fs.Remove(ctx, record.Locator); err != nil {
		logger.Error("deleting %s: %v", record.Name, err)
		return false
	}
	logger.Info("deleted %s", record.Locator)
	return true
}

// Inspect stats a locator.
func (s *LibraryService) Inspect(ctx context.Context, loc domain.Locator) (*domain.Entry, error) {
	return s.fs.Stat(ctx, loc)
}

// ShareAvailable reports whether a share target exists.
func (s *LibraryService) ShareAvailable(ctx context.Context) bool {
	return s.sharer != nil && s.sharer.Available(ctx)
}
