package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

const (
	// DefaultExtension is the document extension discovery looks for.
	DefaultExtension = ".pdf"

	// DefaultMaxDepth bounds recursion so cyclic trees (symlink loops) terminate.
	DefaultMaxDepth = 10
)

// DiscoveryEngine walks the platform roots and produces a flat record list.
type DiscoveryEngine struct {
	fs        driven.FileSystem
	platform  driven.Platform
	selection driven.SelectionStore
	extension string
	maxDepth  int
	now       func() time.Time
}

// NewDiscoveryEngine creates a discovery engine.
// selection may be nil when the platform never scans a chosen directory.
func NewDiscoveryEngine(
	fs driven.FileSystem,
	platform driven.Platform,
	selection driven.SelectionStore,
) *DiscoveryEngine {
	return &DiscoveryEngine{
		fs:        fs,
		platform:  platform,
		selection: selection,
		extension: DefaultExtension,
		maxDepth:  DefaultMaxDepth,
		now:       time.Now,
	}
}

// WithMaxDepth overrides the recursion cap.
func (e *DiscoveryEngine) WithMaxDepth(depth int) *DiscoveryEngine {
	if depth >= 0 {
		e.maxDepth = depth
	}
	return e
}

// WithClock overrides the fallback modification time source.
func (e *DiscoveryEngine) WithClock(now func() time.Time) *DiscoveryEngine {
	e.now = now
	return e
}

// Scan discovers documents under the platform roots.
// It never fails; problems are logged and produce an empty or partial list.
func (e *DiscoveryEngine) Scan(ctx context.Context) (records []domain.FileRecord) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("scanning for documents: %v", r)
			records = []domain.FileRecord{}
		}
	}()

	logger.Section("Discovery")

	if e.platform == nil || e.fs == nil {
		logger.Error("scanning for documents: discovery not configured")
		return []domain.FileRecord{}
	}

	roots, err := e.platform.ListRoots(ctx)
	if err != nil {
		logger.Error("listing roots: %v", err)
		return []domain.FileRecord{}
	}

	return e.ScanRoots(ctx, roots)
}

// ScanRoots discovers documents under the given roots.
func (e *DiscoveryEngine) ScanRoots(ctx context.Context, roots []domain.Locator) []domain.FileRecord {
	records := []domain.FileRecord{}
	for _, root := range roots {
		records = append(records, e.scanRoot(ctx, root)...)
	}
	logger.Info("discovered %d documents under %d roots", len(records), len(roots))
	return records
}

func (e *DiscoveryEngine) scanRoot(ctx context.Context, root domain.Locator) []domain.FileRecord {
	entry, err := e.fs.Stat(ctx, root)
	switch {
	case errors.Is(err, domain.ErrNotFound), err == nil && !entry.IsDir():
		logger.Warn("directory does not exist: %s", root)
		e.forgetSelection(ctx, root)
		return nil
	case err != nil:
		logger.Warn("accessing directory %s: %v", root, err)
		return nil
	}
	return e.walk(ctx, root, 0)
}

// forgetSelection clears a stored root that no longer resolves.
func (e *DiscoveryEngine) forgetSelection(ctx context.Context, root domain.Locator) {
	if e.selection == nil || !e.platform.SupportsUserDirectoryChoice() {
		return
	}
	stored, ok, err := e.selection.Get(ctx)
	if err != nil || !ok || stored != root {
		return
	}
	logger.Info("saved directory no longer exists, clearing selection")
	if err := e.selection.Clear(ctx); err != nil {
		logger.Error("clearing saved directory: %v", err)
	}
}

func (e *DiscoveryEngine) walk(ctx context.Context, dir domain.Locator, depth int) []domain.FileRecord {
	indent := strings.Repeat("  ", depth)
	logger.Debug("%sScanning: %s", indent, dir)

	entries, err := e.fs.List(ctx, dir)
	if err != nil {
		logger.Warn("%sscanning directory %s: %v", indent, dir, err)
		return nil
	}
	logger.Debug("%sFound %d items", indent, len(entries))

	var found []domain.FileRecord
	for _, entry := range entries {
		if ctx.Err() != nil {
			logger.Warn("discovery cancelled: %v", ctx.Err())
			return found
		}

		switch entry.Kind {
		case domain.EntryDirectory:
			if depth < e.maxDepth {
				found = append(found, e.walk(ctx, entry.Locator, depth+1)...)
			} else {
				logger.Debug("%sdepth limit reached, skipping %s", indent, entry.Locator)
			}
		case domain.EntryFile:
			if record, ok := e.toRecord(entry); ok {
				logger.Debug("%sFound PDF: %s", indent, record.Name)
				found = append(found, record)
			}
		default:
			logger.Warn("%sskipping %s: unknown entry kind %s", indent, entry.Locator, entry.Kind)
		}
	}
	return found
}

func (e *DiscoveryEngine) toRecord(entry domain.Entry) (domain.FileRecord, bool) {
	name := entry.Name
	if name == "" {
		name = entry.Locator.Base()
	}
	if !strings.HasSuffix(strings.ToLower(name), e.extension) {
		return domain.FileRecord{}, false
	}

	size := entry.Size
	if size < 0 {
		size = 0
	}
	modified := entry.ModTime
	if modified.IsZero() {
		modified = e.now()
	}

	return domain.FileRecord{
		ID:         entry.Locator.String(),
		Name:       name,
		Size:       size,
		ModifiedAt: modified,
		Locator:    entry.Locator,
	}, true
}
