package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/views/library"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/views/viewer"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

// watchStarted carries the watcher channel back to the model.
type watchStarted struct {
	changes <-chan struct{}
	gen     int
}

// watchEvent reports a change seen by the subscription numbered gen.
type watchEvent struct {
	gen int
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	libraryView *library.View
	viewerView  *viewer.View

	currentView messages.ViewType

	// Each call to startWatch bumps watchGen and cancels the previous
	// subscription, so events from older subscriptions are dropped.
	changes     <-chan struct{}
	watchGen    int
	watchCancel context.CancelFunc

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	h := help.New()
	h.ShowAll = true

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		help:   h,
		libraryView: library.NewView(s, library.Config{
			Library:   ports.Library,
			Folder:    ports.Folder,
			Presenter: ports.Presenter,
			Picks:     ports.Picks,
			Sort:      ports.DefaultSort,
		}),
		viewerView:  viewer.NewView(s, ports.Library),
		currentView: messages.ViewLibrary,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.libraryView.WithContext(ctx)
	a.viewerView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("pdfshelf"),
		a.libraryView.Init(),
		a.startWatch(),
	)
}

// startWatch subscribes to root changes when watch mode is configured.
// Any earlier subscription is cancelled, so it also re-reads the roots
// after the scanned folder changes.
func (a *App) startWatch() tea.Cmd {
	if !a.ports.watching() {
		return nil
	}
	a.stopWatch()

	ctx, cancel := context.WithCancel(a.ctx)
	a.watchCancel = cancel
	a.watchGen++
	gen, ports := a.watchGen, a.ports

	return func() tea.Msg {
		roots, err := ports.Roots.ListRoots(ctx)
		if err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("listing roots to watch: %w", err)}
		}
		changes, err := ports.Watcher.Watch(ctx, roots)
		if err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("starting watcher: %w", err)}
		}
		logger.Debug("watching %d root(s)", len(roots))
		return watchStarted{changes: changes, gen: gen}
	}
}

// stopWatch cancels the current subscription, if any.
func (a *App) stopWatch() {
	if a.watchCancel != nil {
		a.watchCancel()
		a.watchCancel = nil
	}
}

// waitForChange blocks on the watcher channel. It yields nil once the
// channel closes, which ends the subscription.
func waitForChange(changes <-chan struct{}, gen int) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return watchEvent{gen: gen}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.stopWatch()
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewLibrary:
			a.libraryView, cmd = a.libraryView.Update(msg)
		case messages.ViewViewer:
			a.viewerView, cmd = a.viewerView.Update(msg)
		case messages.ViewHelp:
			switch msg.String() {
			case "esc", "?", "q", "enter":
				a.currentView = messages.ViewLibrary
			}
		}
		return a, cmd

	case watchStarted:
		if msg.gen != a.watchGen {
			return a, nil
		}
		a.changes = msg.changes
		return a, waitForChange(a.changes, msg.gen)

	case watchEvent:
		if msg.gen != a.watchGen {
			return a, nil
		}
		a.libraryView, cmd = a.libraryView.Update(messages.LibraryChanged{})
		return a, tea.Batch(cmd, waitForChange(a.changes, msg.gen))

	case messages.DirectoryChosen:
		a.libraryView, cmd = a.libraryView.Update(msg)
		if msg.Err != nil {
			return a, cmd
		}
		return a, tea.Batch(cmd, a.startWatch())

	case messages.DocumentPrepared:
		a.libraryView, cmd = a.libraryView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			logger.Warn("preparing %s: %v", msg.Record.Name, msg.Err)
			return a, cmd
		}
		a.currentView = messages.ViewViewer
		return a, tea.Batch(cmd, a.viewerView.SetDocument(msg.Record, msg.Locator))

	case messages.DocumentInspected, messages.HandOffCompleted:
		a.viewerView, cmd = a.viewerView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		previous := a.currentView
		a.currentView = msg.View
		if msg.View == messages.ViewLibrary && previous == messages.ViewViewer {
			// Returning to the list rescans, like regaining focus.
			return a, a.libraryView.Reload()
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.libraryView, cmd = a.libraryView.Update(msg)
		return a, cmd

	case messages.Quit:
		a.stopWatch()
		return a, tea.Quit
	}

	a.libraryView, cmd = a.libraryView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewViewer:
		return a.viewerView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewLibrary:
	}
	return a.libraryView.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Help.Render("[esc] back to library")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Library returns the library view.
func (a *App) Library() *library.View {
	return a.libraryView
}

// Viewer returns the viewer view.
func (a *App) Viewer() *viewer.View {
	return a.viewerView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its first size.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.libraryView.SetDimensions(width, height)
	a.viewerView.SetDimensions(width, height)
}
