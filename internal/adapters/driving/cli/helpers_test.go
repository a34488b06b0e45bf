package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fsmemory "github.com/custodia-labs/pdfshelf/internal/adapters/driven/filesystem/memory"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driven/platform"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfshelf/internal/config"
	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	coreservices "github.com/custodia-labs/pdfshelf/internal/core/services"
)

var testAreas = platform.Areas{
	Documents: "/data/documents",
	Cache:     "/data/cache",
	Picker:    "/data/cache/DocumentPicker",
}

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// pathPicker picks whatever path was pushed last, resolved against the memory FS.
type pathPicker struct {
	mu    sync.Mutex
	fs    *fsmemory.FileSystem
	paths []string
}

func (p *pathPicker) Push(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append(p.paths, path)
}

func (p *pathPicker) Pick(ctx context.Context) (*domain.PickedDocument, error) {
	p.mu.Lock()
	if len(p.paths) == 0 {
		p.mu.Unlock()
		return nil, nil
	}
	path := p.paths[0]
	p.paths = p.paths[1:]
	p.mu.Unlock()

	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	loc := domain.FileLocator(path)
	entry, err := p.fs.Stat(ctx, loc)
	if err != nil {
		return nil, err
	}
	return &domain.PickedDocument{Locator: loc, Name: entry.Name, Size: entry.Size}, nil
}

// recordingSharer is a driven.ShareSheet that remembers what it was given.
type recordingSharer struct {
	mu        sync.Mutex
	available bool
	shared    []domain.Locator
	titles    []string
}

func (r *recordingSharer) Available(context.Context) bool { return r.available }

func (r *recordingSharer) Share(_ context.Context, loc domain.Locator, opts domain.ShareOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shared = append(r.shared, loc)
	r.titles = append(r.titles, opts.Title)
	return nil
}

type fixture struct {
	fs        *fsmemory.FileSystem
	selection *memory.SelectionStore
	sharer    *recordingSharer
	picker    *pathPicker
	services  *Services
}

// newFixture wires real services over an in-memory tree rooted at /pdfs.
func newFixture(t *testing.T, mode domain.PlatformMode) *fixture {
	t.Helper()

	fs := fsmemory.New()
	fs.AddFile(domain.FileLocator("/pdfs/b.pdf"), make([]byte, 10), testTime.Add(-time.Hour))
	fs.AddFile(domain.FileLocator("/pdfs/A.pdf"), make([]byte, 5), testTime.Add(-2*time.Hour))
	fs.AddFile(domain.FileLocator("/pdfs/reports/Q3_Report.pdf"), make([]byte, 20), testTime)
	fs.AddFile(domain.FileLocator("/pdfs/notes.txt"), []byte("x"), testTime)
	fs.AddDir(domain.FileLocator(testAreas.Documents))

	sel := memory.NewSelectionStore()
	plat, err := platform.New(mode, testAreas, sel)
	require.NoError(t, err)
	if mode == domain.PlatformDirectory {
		require.NoError(t, sel.Set(context.Background(), domain.FileLocator("/pdfs")))
	}

	sharer := &recordingSharer{available: true}
	picker := &pathPicker{fs: fs}
	engine := coreservices.NewDiscoveryEngine(fs, plat, sel)

	cfg := config.Default()
	cfg.Display.Sort = domain.SortNameAsc.String()

	f := &fixture{
		fs:        fs,
		selection: sel,
		sharer:    sharer,
		picker:    picker,
		services: &Services{
			Config:    cfg,
			Library:   coreservices.NewLibraryService(engine, fs, plat, picker, sharer),
			Folder:    coreservices.NewFolderService(fs, plat, sel),
			Presenter: coreservices.NewPresenter("en"),
			Picks:     picker,
			Platform:  plat,
		},
	}

	SetServices(f.services)
	t.Cleanup(func() { SetServices(nil) })
	return f
}

// run executes the root command with args, resetting flag state first.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	listQuery, listSort, listFormat = "", "", formatTable
	deleteYes = false
	configYAML = false
	tuiWatch = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
