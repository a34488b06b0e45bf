// Package picker implements the document picker port for terminals.
//
// A terminal has no native picker sheet, so the chosen path comes from a
// PathSource (a CLI argument or a TUI prompt). Like a mobile picker, the
// chosen file is staged into a transient area before it is handed back.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/otiai10/copy"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

// Ensure Picker implements the interface.
var _ driven.DocumentPicker = (*Picker)(nil)

// PathSource supplies the path the user chose. An empty path means cancelled.
type PathSource interface {
	NextPath(ctx context.Context) (string, error)
}

// Queue is a PathSource fed by the caller before each pick.
type Queue struct {
	mu    sync.Mutex
	paths []string
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push enqueues a chosen path.
func (q *Queue) Push(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paths = append(q.paths, path)
}

// NextPath dequeues the oldest path, or returns "" when empty.
func (q *Queue) NextPath(_ context.Context) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.paths) == 0 {
		return "", nil
	}
	path := q.paths[0]
	q.paths = q.paths[1:]
	return path, nil
}

// Picker stages chosen PDFs into area/<uuid>/<name>.
type Picker struct {
	area   string
	source PathSource
}

// New creates a picker staging into area.
func New(area string, source PathSource) *Picker {
	return &Picker{area: area, source: source}
}

// Pick asks the source for a path and stages a copy of it.
// A nil document with a nil error means the user cancelled.
func (p *Picker) Pick(ctx context.Context) (*domain.PickedDocument, error) {
	path, err := p.source.NextPath(ctx)
	if err != nil {
		return nil, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	path, err = expandHome(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	name := filepath.Base(path)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return nil, fmt.Errorf("%w: %s is not a PDF", domain.ErrInvalidInput, name)
	}

	staged := filepath.Join(p.area, uuid.NewString(), name)
	if err := os.MkdirAll(filepath.Dir(staged), 0o700); err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	if err := copy.Copy(path, staged); err != nil {
		return nil, fmt.Errorf("staging %s: %w", name, err)
	}
	logger.Debug("staged %s at %s", path, staged)

	return &domain.PickedDocument{
		Locator: domain.FileLocator(staged),
		Name:    name,
		Size:    info.Size(),
	}, nil
}

// Prune removes staging directories older than maxAge.
func (p *Picker) Prune(maxAge time.Duration) error {
	entries, err := os.ReadDir(p.area)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", p.area, err)
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(p.area, entry.Name())); err != nil {
			logger.Warn("pruning %s: %v", entry.Name(), err)
		}
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Abs(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
