package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

func writeConfig(t *testing.T, body string) (path, dataDir string) {
	t.Helper()
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "data")
	path = filepath.Join(dir, "config.toml")
	content := "[paths]\ndata_dir = \"" + filepath.ToSlash(dataDir) + "\"\n" + body
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path, dataDir
}

func TestBootstrap_SandboxDiscoversDocumentArea(t *testing.T) {
	path, dataDir := writeConfig(t, "[platform]\nmode = \"sandbox\"\n[store]\nbackend = \"memory\"\n")

	svc, cleanup, err := bootstrap(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	require.NotNil(t, svc.Library)
	require.NotNil(t, svc.Folder)
	require.NotNil(t, svc.Presenter)
	require.NotNil(t, svc.Picks)
	require.NotNil(t, svc.Watcher)
	assert.Equal(t, domain.PlatformSandbox, svc.Platform.Mode())
	assert.False(t, svc.Folder.SupportsDirectoryChoice())

	docs := filepath.Join(dataDir, "documents")
	require.NoError(t, os.WriteFile(filepath.Join(docs, "report.pdf"), []byte("%PDF-1.4"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "notes.txt"), []byte("x"), 0o600))

	records := svc.Library.Discover(context.Background())
	require.Len(t, records, 1)
	assert.Equal(t, "report.pdf", records[0].Name)
}

func TestBootstrap_DirectoryModeWithBolt(t *testing.T) {
	path, _ := writeConfig(t, "[platform]\nmode = \"directory\"\n[store]\nbackend = \"bolt\"\n")

	svc, cleanup, err := bootstrap(context.Background(), path)
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, svc.Folder.SupportsDirectoryChoice())
	assert.Empty(t, svc.Library.Discover(context.Background()))
}

func TestBootstrap_SQLiteSelectionPersists(t *testing.T) {
	path, _ := writeConfig(t, "[store]\nbackend = \"sqlite\"\n")
	folder := t.TempDir()
	ctx := context.Background()

	svc, cleanup, err := bootstrap(ctx, path)
	require.NoError(t, err)
	require.NoError(t, svc.Folder.ChooseDirectory(ctx, domain.FileLocator(folder)))
	cleanup()

	svc, cleanup, err = bootstrap(ctx, path)
	require.NoError(t, err)
	defer cleanup()

	current, ok, err := svc.Folder.CurrentDirectory(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.FileLocator(folder), current)
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	path, _ := writeConfig(t, "[store]\nbackend = \"postgres\"\n")

	_, _, err := bootstrap(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBootstrap_LogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "pdfshelf.log")
	path, _ := writeConfig(t, "[store]\nbackend = \"memory\"\n[log]\nfile = \""+filepath.ToSlash(logPath)+"\"\n")

	_, cleanup, err := bootstrap(context.Background(), path)
	require.NoError(t, err)
	cleanup()

	_, err = os.Stat(logPath)
	assert.NoError(t, err)
}
