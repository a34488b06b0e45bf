// Package watcher implements the watcher port with fsnotify. Bursts of
// filesystem events are coalesced and throttled with a token bucket so a
// large copy triggers a bounded number of rescans.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

// DefaultMinInterval is the minimum time between two change signals.
const DefaultMinInterval = 2 * time.Second

// maxWatchDepth mirrors the discovery recursion cap.
const maxWatchDepth = 10

// Ensure Watcher implements the interface.
var _ driven.Watcher = (*Watcher)(nil)

// Watcher signals when the contents of local roots change.
type Watcher struct {
	minInterval time.Duration
}

// New creates a watcher. A non-positive interval selects DefaultMinInterval.
func New(minInterval time.Duration) *Watcher {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Watcher{minInterval: minInterval}
}

// Watch starts watching the direct-path roots and their subdirectories.
// Other schemes are ignored. The returned channel is closed when ctx ends.
func (w *Watcher) Watch(ctx context.Context, roots []domain.Locator) (<-chan struct{}, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	watched := 0
	for _, root := range roots {
		path := root.Path()
		if path == "" {
			logger.Debug("not watching %s: unsupported scheme", root)
			continue
		}
		watched += addTree(fsw, path)
	}
	logger.Debug("watching %d directories", watched)

	out := make(chan struct{}, 1)
	go w.loop(ctx, fsw, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- struct{}) {
	defer close(out)
	defer fsw.Close()

	limiter := rate.NewLimiter(rate.Every(w.minInterval), 1)
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					addTree(fsw, event.Name)
				}
			}
			if fire == nil {
				fire = time.After(limiter.Reserve().Delay())
			}

		case <-fire:
			fire = nil
			select {
			case out <- struct{}{}:
			default:
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// relevant reports whether an event can change the discovered set.
// Hidden entries and permission changes are ignored. Creates and writes of
// regular files only count for PDFs; removals always count because the
// removed entry may have been a directory.
func relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return true
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		if strings.EqualFold(filepath.Ext(name), ".pdf") {
			return true
		}
		info, err := os.Stat(event.Name)
		return err == nil && info.IsDir()
	default:
		return false
	}
}

// addTree watches dir and its subdirectories up to maxWatchDepth.
func addTree(fsw *fsnotify.Watcher, dir string) int {
	base := strings.Count(filepath.Clean(dir), string(filepath.Separator))
	added := 0
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("not watching %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if strings.Count(filepath.Clean(path), string(filepath.Separator))-base > maxWatchDepth {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			logger.Debug("not watching %s: %v", path, err)
			return nil
		}
		added++
		return nil
	})
	return added
}
