package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "a.pdf")
	txt := filepath.Join(dir, "a.txt")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.WriteFile(pdf, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(sub, 0o700))

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "create pdf", event: fsnotify.Event{Name: pdf, Op: fsnotify.Create}, want: true},
		{name: "write pdf", event: fsnotify.Event{Name: pdf, Op: fsnotify.Write}, want: true},
		{name: "create directory", event: fsnotify.Event{Name: sub, Op: fsnotify.Create}, want: true},
		{name: "remove anything", event: fsnotify.Event{Name: filepath.Join(dir, "gone"), Op: fsnotify.Remove}, want: true},
		{name: "rename anything", event: fsnotify.Event{Name: txt, Op: fsnotify.Rename}, want: true},
		{name: "write text file", event: fsnotify.Event{Name: txt, Op: fsnotify.Write}, want: false},
		{name: "chmod pdf", event: fsnotify.Event{Name: pdf, Op: fsnotify.Chmod}, want: false},
		{name: "hidden file", event: fsnotify.Event{Name: filepath.Join(dir, ".a.pdf"), Op: fsnotify.Create}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event))
		})
	}
}

func TestWatcher_SignalsOnNewPDF(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := New(10*time.Millisecond).Watch(ctx, []domain.Locator{domain.FileLocator(dir)})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.pdf"), []byte("%PDF"), 0o600))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change signal")
	}
}

func TestWatcher_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	changes, err := New(0).Watch(ctx, []domain.Locator{"s3://bucket/docs"})
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
