package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/services"
)

func testRecords() []domain.FileRecord {
	return []domain.FileRecord{
		{ID: "1", Name: "a.pdf", Size: 1, Locator: domain.FileLocator("/pdfs/a.pdf")},
		{ID: "2", Name: "b.pdf", Size: 2, Locator: domain.FileLocator("/pdfs/b.pdf")},
	}
}

func newTestApp(t *testing.T, lib *MockLibraryService) *App {
	t.Helper()
	app, err := NewApp(&Ports{
		Library:     lib,
		Presenter:   services.NewPresenter("en"),
		DefaultSort: domain.SortNameAsc,
	})
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

// step feeds msg to the app and runs the returned command once,
// feeding its result back. Batches are not expanded.
func step(app *App, msg tea.Msg) tea.Cmd {
	_, cmd := app.Update(msg)
	return cmd
}

func TestNewApp_Success(t *testing.T) {
	app := newTestApp(t, &MockLibraryService{})

	assert.Equal(t, messages.ViewLibrary, app.CurrentView())
	assert.NotNil(t, app.Library())
	assert.NotNil(t, app.Viewer())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Presenter: services.NewPresenter("en")})

	assert.ErrorIs(t, err, ErrMissingLibraryService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t, &MockLibraryService{})

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t, &MockLibraryService{})

	assert.NotNil(t, app.Init())
}

func TestApp_ViewBeforeReady(t *testing.T) {
	app, err := NewApp(&Ports{Library: &MockLibraryService{}, Presenter: services.NewPresenter("en")})
	require.NoError(t, err)

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.True(t, app.Ready())
}

func TestApp_LoadsLibrary(t *testing.T) {
	lib := &MockLibraryService{Records: testRecords()}
	app := newTestApp(t, lib)

	app.Update(messages.LibraryLoaded{Records: lib.Discover(context.Background())})

	assert.Len(t, app.Library().Visible(), 2)
	assert.Contains(t, app.View(), "a.pdf")
}

func TestApp_OpenNavigatesToViewer(t *testing.T) {
	lib := &MockLibraryService{Records: testRecords()}
	app := newTestApp(t, lib)
	app.Update(messages.LibraryLoaded{Records: testRecords()})

	cmd := step(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	prepared, ok := cmd().(messages.DocumentPrepared)
	require.True(t, ok)

	cmd = step(app, prepared)
	assert.Equal(t, messages.ViewViewer, app.CurrentView())
	assert.Equal(t, "a.pdf", app.Viewer().Record().Name)
	assert.NotNil(t, cmd)

	// Drive the viewer: inspection then hand-off.
	inspectCmd := app.Viewer().SetDocument(prepared.Record, prepared.Locator)
	handOff := step(app, inspectCmd())
	require.NotNil(t, handOff)
	step(app, handOff())

	assert.Equal(t, []domain.Locator{domain.FileLocator("/cache/a.pdf")}, lib.HandOffs)
	assert.Contains(t, app.View(), "Open Again")
}

func TestApp_PrepareFailureStaysOnLibrary(t *testing.T) {
	lib := &MockLibraryService{Records: testRecords(), PrepErr: domain.ErrPreparationFailed}
	app := newTestApp(t, lib)
	app.Update(messages.LibraryLoaded{Records: testRecords()})

	cmd := step(app, tea.KeyMsg{Type: tea.KeyEnter})
	step(app, cmd())

	assert.Equal(t, messages.ViewLibrary, app.CurrentView())
	assert.ErrorIs(t, app.Err(), domain.ErrPreparationFailed)
	assert.False(t, app.Library().Opening())
}

func TestApp_BackFromViewerReloads(t *testing.T) {
	lib := &MockLibraryService{Records: testRecords()}
	app := newTestApp(t, lib)
	app.Update(messages.LibraryLoaded{Records: testRecords()})
	app.Update(messages.DocumentPrepared{Record: testRecords()[0], Locator: domain.FileLocator("/cache/a.pdf")})
	require.Equal(t, messages.ViewViewer, app.CurrentView())

	cmd := step(app, messages.ViewChanged{View: messages.ViewLibrary})

	assert.Equal(t, messages.ViewLibrary, app.CurrentView())
	require.NotNil(t, cmd)
	_, ok := cmd().(messages.LibraryLoaded)
	assert.True(t, ok)
}

func TestApp_HelpView(t *testing.T) {
	app := newTestApp(t, &MockLibraryService{})

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	view := app.View()
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "delete")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewLibrary, app.CurrentView())
}

func TestApp_QuitMessages(t *testing.T) {
	app := newTestApp(t, &MockLibraryService{})

	cmd := step(app, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	cmd = step(app, messages.Quit{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, &MockLibraryService{})

	app.Update(messages.ErrorOccurred{Err: domain.ErrNotFound})

	assert.ErrorIs(t, app.Err(), domain.ErrNotFound)
	assert.Contains(t, app.View(), "Error:")
}

func TestApp_WatchModeRescans(t *testing.T) {
	lib := &MockLibraryService{Records: testRecords()}
	watcher := &MockWatcher{Changes: make(chan struct{}, 1)}
	roots := staticRoots{domain.FileLocator("/pdfs")}
	app, err := NewApp(&Ports{
		Library:   lib,
		Presenter: services.NewPresenter("en"),
		Watcher:   watcher,
		Roots:     roots,
	})
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	app.Update(messages.LibraryLoaded{Records: testRecords()})

	start := app.startWatch()
	require.NotNil(t, start)
	started := start()
	assert.Equal(t, []domain.Locator(roots), watcher.Roots)

	wait := step(app, started)
	require.NotNil(t, wait)

	watcher.Changes <- struct{}{}
	changed := wait()
	assert.IsType(t, watchEvent{}, changed)

	step(app, changed)
	assert.True(t, app.Library().Loading(), "a change starts a rescan")

	close(watcher.Changes)
	assert.Nil(t, waitForChange(watcher.Changes, 1)())
}

// runAll runs cmd and any batched commands, collecting their messages.
func runAll(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, c := range batch {
		msgs = append(msgs, runAll(c)...)
	}
	return msgs
}

func TestApp_FolderChangeMovesWatch(t *testing.T) {
	oldRoot := domain.FileLocator("/old")
	newRoot := domain.FileLocator("/new")
	lib := &MockLibraryService{Records: testRecords()}
	watcher := &MockWatcher{Changes: make(chan struct{}, 1)}
	roots := &movableRoots{root: oldRoot}
	app, err := NewApp(&Ports{
		Library:   lib,
		Presenter: services.NewPresenter("en"),
		Watcher:   watcher,
		Roots:     roots,
	})
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	app.Update(messages.LibraryLoaded{Records: testRecords()})

	first := app.startWatch()()
	require.NotNil(t, step(app, first))

	roots.Set(newRoot)
	var second tea.Msg
	for _, msg := range runAll(step(app, messages.DirectoryChosen{Locator: newRoot})) {
		if started, ok := msg.(watchStarted); ok {
			second = started
		}
	}
	require.NotNil(t, second, "choosing a folder restarts the watch")

	require.Len(t, watcher.Calls, 2)
	assert.Equal(t, []domain.Locator{oldRoot}, watcher.Calls[0])
	assert.Equal(t, []domain.Locator{newRoot}, watcher.Calls[1])
	assert.Error(t, watcher.Ctxs[0].Err(), "the old subscription is cancelled")
	assert.NoError(t, watcher.Ctxs[1].Err())

	assert.Nil(t, step(app, first), "a stale subscription is ignored")
	assert.Nil(t, step(app, watchEvent{gen: 1}), "events from the old root are dropped")
	assert.NotNil(t, step(app, second))
}

func TestApp_FailedFolderChoiceKeepsWatch(t *testing.T) {
	watcher := &MockWatcher{Changes: make(chan struct{}, 1)}
	app, err := NewApp(&Ports{
		Library:   &MockLibraryService{},
		Presenter: services.NewPresenter("en"),
		Watcher:   watcher,
		Roots:     staticRoots{domain.FileLocator("/pdfs")},
	})
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	step(app, app.startWatch()())
	runAll(step(app, messages.DirectoryChosen{Err: domain.ErrNotFound}))

	require.Len(t, watcher.Calls, 1)
	assert.NoError(t, watcher.Ctxs[0].Err())
}

func TestApp_NoWatchWithoutWatcher(t *testing.T) {
	app := newTestApp(t, &MockLibraryService{})

	assert.Nil(t, app.startWatch())
}
