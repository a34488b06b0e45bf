// Package library provides the document list view: search, sort, share,
// delete, open and the folder/import prompts.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfshelf/internal/config"
	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driving"
	"github.com/custodia-labs/pdfshelf/internal/core/services"
	"github.com/custodia-labs/pdfshelf/internal/format"
)

// PathQueue receives the path chosen for the next document pick.
type PathQueue interface {
	Push(path string)
}

// Mode is the input mode of the view.
type Mode int

const (
	// ModeBrowse navigates the list.
	ModeBrowse Mode = iota
	// ModeSearch types into the search box.
	ModeSearch
	// ModeSort chooses an order.
	ModeSort
	// ModeConfirmDelete waits for y to delete the pending record.
	ModeConfirmDelete
	// ModeFolder types a folder to scan.
	ModeFolder
	// ModeImport types a PDF path to add.
	ModeImport
)

// Notices shown to the user.
const (
	NoticeDeleteFailed     = "Failed to delete PDF"
	NoticePrepareFailed    = "Could not prepare file for viewing."
	NoticeNoFileChosen     = "No file chosen"
	NoticeFolderDenied     = "Could not access the selected directory."
	NoticeShareFailed      = "Failed to share PDF"
	NoticeShareUnavailable = "Sharing is not available on this device"
)

// Config wires the view to the core.
type Config struct {
	Library   driving.LibraryService
	Folder    driving.FolderService
	Presenter driving.Presenter
	Picks     PathQueue
	Sort      domain.SortSpec
}

// View is the library list view.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	library   driving.LibraryService
	folder    driving.FolderService
	presenter driving.Presenter
	picks     PathQueue

	ctx   context.Context
	guard services.Guard

	records []domain.FileRecord
	list    *list.RecordList
	status  *status.Bar

	search *input.Prompt
	prompt *input.Prompt

	sort       domain.SortSpec
	sortCursor int
	mode       Mode
	pending    *domain.FileRecord
	loading    bool
	loaded     bool

	width  int
	height int
}

// NewView creates a library view.
func NewView(s *styles.Styles, cfg Config) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	if !cfg.Sort.Valid() {
		cfg.Sort = domain.DefaultSort
	}

	v := &View{
		styles:    s,
		keymap:    km,
		library:   cfg.Library,
		folder:    cfg.Folder,
		presenter: cfg.Presenter,
		picks:     cfg.Picks,
		ctx:       context.Background(),
		list:      list.NewRecordList(s),
		status:    status.NewBar(s, km),
		search:    input.NewPrompt(s, "Search", "Search PDFs..."),
		sort:      cfg.Sort,
		width:     80,
		height:    24,
	}
	v.status.SetBindings(km.LibraryHelp(v.directoryChoice()))
	v.layout()
	return v
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the first discovery pass.
func (v *View) Init() tea.Cmd {
	return v.Reload()
}

// Reload starts a discovery pass unless one is running.
func (v *View) Reload() tea.Cmd {
	if v.library == nil || v.loading {
		return nil
	}
	v.loading = true
	v.status.SetState(status.StateLoading)
	ctx, lib := v.ctx, v.library
	return func() tea.Msg {
		return messages.LibraryLoaded{Records: lib.Discover(ctx)}
	}
}

// Update handles messages for the library view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.LibraryLoaded:
		v.loading = false
		v.loaded = true
		v.records = msg.Records
		v.refresh()
		if v.status.State() == status.StateLoading {
			v.status.Clear()
		}
		return v, nil

	case messages.LibraryChanged, messages.ReloadRequested:
		return v, v.Reload()

	case messages.DocumentPrepared:
		v.guard.End()
		if msg.Err != nil {
			v.status.Notify(NoticePrepareFailed)
		} else {
			v.status.Clear()
		}
		return v, nil

	case messages.DocumentShared:
		switch {
		case errors.Is(msg.Err, domain.ErrShareUnavailable):
			v.status.Notify(NoticeShareUnavailable)
		case msg.Err != nil:
			v.status.Notify(NoticeShareFailed)
		default:
			v.status.Clear()
		}
		return v, nil

	case messages.DocumentDeleted:
		if !msg.OK {
			v.status.Notify(NoticeDeleteFailed)
			return v, nil
		}
		v.remove(msg.Record)
		v.status.Clear()
		return v, nil

	case messages.DocumentImported:
		switch {
		case msg.Err != nil:
			v.status.Fail(msg.Err)
			return v, nil
		case msg.Record == nil:
			v.status.Notify(NoticeNoFileChosen)
			return v, nil
		}
		v.status.Clear()
		return v, v.Reload()

	case messages.DirectoryChosen:
		if msg.Err != nil {
			v.status.Notify(NoticeFolderDenied)
			return v, nil
		}
		return v, v.Reload()

	case messages.ErrorOccurred:
		v.status.Fail(msg.Err)
		return v, nil
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.mode {
	case ModeSearch:
		return v.handleSearchKey(msg)
	case ModeSort:
		return v.handleSortKey(msg)
	case ModeConfirmDelete:
		return v.handleConfirmKey(msg)
	case ModeFolder, ModeImport:
		return v.handlePromptKey(msg)
	case ModeBrowse:
	}

	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(k, v.keymap.Back):
		if v.search.Value() != "" {
			v.search.Reset()
			v.refresh()
		}
		v.status.Clear()
		return v, nil
	case keymap.Matches(k, v.keymap.Open):
		return v, v.open()
	case keymap.Matches(k, v.keymap.Search):
		v.mode = ModeSearch
		return v, v.search.Focus()
	case keymap.Matches(k, v.keymap.Sort):
		v.mode = ModeSort
		v.sortCursor = sortIndex(v.sort)
		return v, nil
	case keymap.Matches(k, v.keymap.Share):
		return v, v.share()
	case keymap.Matches(k, v.keymap.Delete):
		if rec := v.list.SelectedRecord(); rec != nil {
			r := *rec
			v.pending = &r
			v.mode = ModeConfirmDelete
		}
		return v, nil
	case keymap.Matches(k, v.keymap.Reload):
		return v, v.Reload()
	case keymap.Matches(k, v.keymap.Folder):
		if !v.directoryChoice() {
			return v, nil
		}
		return v, v.startPrompt(ModeFolder, "Folder", "~/Documents or s3://bucket/prefix")
	case keymap.Matches(k, v.keymap.Import):
		if v.directoryChoice() || v.picks == nil {
			return v, nil
		}
		return v, v.startPrompt(ModeImport, "Add PDF", "path to a .pdf file")
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) handleSearchKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.search.Blur()
		v.mode = ModeBrowse
		return v, nil
	case tea.KeyEsc:
		v.search.Reset()
		v.search.Blur()
		v.mode = ModeBrowse
		v.refresh()
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.refresh()
	return v, cmd
}

func (v *View) handleSortKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	specs := domain.AllSortSpecs()
	switch msg.String() {
	case "up", "k":
		if v.sortCursor > 0 {
			v.sortCursor--
		}
	case "down", "j":
		if v.sortCursor < len(specs)-1 {
			v.sortCursor++
		}
	case "enter":
		v.sort = specs[v.sortCursor]
		v.mode = ModeBrowse
		v.refresh()
	case "esc", "s":
		v.mode = ModeBrowse
	}
	return v, nil
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	pending := v.pending
	v.pending = nil
	v.mode = ModeBrowse

	if pending == nil || !keymap.Matches(msg.String(), v.keymap.Confirm) {
		return v, nil
	}

	ctx, lib, rec := v.ctx, v.library, *pending
	return v, func() tea.Msg {
		return messages.DocumentDeleted{Record: rec, OK: lib.Delete(ctx, rec)}
	}
}

func (v *View) startPrompt(mode Mode, label, placeholder string) tea.Cmd {
	v.mode = mode
	v.prompt = input.NewPrompt(v.styles, label, placeholder)
	v.prompt.SetWidth(v.width)
	return v.prompt.Focus()
}

func (v *View) handlePromptKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = ModeBrowse
		v.prompt = nil
		return v, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(v.prompt.Value())
		mode := v.mode
		v.mode = ModeBrowse
		v.prompt = nil
		if mode == ModeFolder {
			return v, v.chooseFolder(value)
		}
		return v, v.importDocument(value)
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

// open prepares the selected record. A second open while one is in flight
// is dropped.
func (v *View) open() tea.Cmd {
	rec := v.list.SelectedRecord()
	if rec == nil || v.library == nil || !v.guard.Begin() {
		return nil
	}
	v.status.SetState(status.StateOpening)

	ctx, lib, r := v.ctx, v.library, *rec
	return func() tea.Msg {
		loc, err := lib.PrepareForViewing(ctx, r)
		return messages.DocumentPrepared{Record: r, Locator: loc, Err: err}
	}
}

func (v *View) share() tea.Cmd {
	rec := v.list.SelectedRecord()
	if rec == nil || v.library == nil {
		return nil
	}

	ctx, lib, r := v.ctx, v.library, *rec
	return func() tea.Msg {
		if !lib.ShareAvailable(ctx) {
			return messages.DocumentShared{Name: r.Name, Err: domain.ErrShareUnavailable}
		}
		return messages.DocumentShared{Name: r.Name, Err: lib.Share(ctx, r)}
	}
}

func (v *View) chooseFolder(value string) tea.Cmd {
	if value == "" || v.folder == nil {
		return nil
	}

	ctx, folder := v.ctx, v.folder
	return func() tea.Msg {
		path, err := config.ExpandHome(value)
		if err != nil {
			return messages.DirectoryChosen{Err: err}
		}
		loc, err := domain.ParseLocator(path)
		if err != nil {
			return messages.DirectoryChosen{Err: err}
		}
		return messages.DirectoryChosen{Locator: loc, Err: folder.ChooseDirectory(ctx, loc)}
	}
}

func (v *View) importDocument(value string) tea.Cmd {
	if v.picks == nil || v.library == nil {
		return nil
	}
	if value == "" {
		v.status.Notify(NoticeNoFileChosen)
		return nil
	}

	v.picks.Push(value)
	ctx, lib := v.ctx, v.library
	return func() tea.Msg {
		rec, err := lib.Import(ctx)
		return messages.DocumentImported{Record: rec, Err: err}
	}
}

// remove drops exactly one record with the same ID.
func (v *View) remove(rec domain.FileRecord) {
	for i := range v.records {
		if v.records[i].ID == rec.ID {
			next := make([]domain.FileRecord, 0, len(v.records)-1)
			next = append(next, v.records[:i]...)
			v.records = append(next, v.records[i+1:]...)
			break
		}
	}
	v.refresh()
}

// refresh recomputes the visible list from the records, query and order.
func (v *View) refresh() {
	visible := v.records
	if v.presenter != nil {
		visible = v.presenter.Present(v.records, v.search.Value(), v.sort)
	}
	v.list.SetRecords(visible)
	v.status.SetCount(len(visible))
}

func (v *View) directoryChoice() bool {
	return v.folder != nil && v.folder.SupportsDirectoryChoice()
}

func sortIndex(spec domain.SortSpec) int {
	for i, s := range domain.AllSortSpecs() {
		if s == spec {
			return i
		}
	}
	return 0
}

func (v *View) layout() {
	// Header, search box, blank line, status bar and footer padding.
	const reserved = 9
	v.list.SetDimensions(v.width, max(v.height-reserved, 1))
	v.search.SetWidth(v.width)
	v.status.SetWidth(v.width)
	if v.prompt != nil {
		v.prompt.SetWidth(v.width)
	}
}

// View renders the library view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("PDF Library"))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(format.Count(len(v.Visible()), "document")))
	b.WriteString("  ")
	b.WriteString(v.styles.Badge.Render(v.sort.Label()))
	b.WriteString("\n\n")
	b.WriteString(v.search.View())
	b.WriteString("\n\n")

	switch {
	case v.mode == ModeSort:
		b.WriteString(v.renderSortChooser())
	case v.mode == ModeConfirmDelete && v.pending != nil:
		b.WriteString(v.renderConfirm())
	case v.mode == ModeFolder || v.mode == ModeImport:
		b.WriteString(v.prompt.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] confirm  [esc] cancel"))
	case v.loading && !v.loaded:
		b.WriteString(v.styles.Muted.Render("Scanning for PDFs..."))
	case v.list.IsEmpty():
		b.WriteString(v.renderEmpty())
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.status.View())
	return b.String()
}

func (v *View) renderEmpty() string {
	title, subtitle := EmptyState(v.search.Value(), v.directoryChoice())
	return v.styles.Subtitle.Render(title) + "\n" + v.styles.Muted.Render(subtitle)
}

// EmptyState returns the title and hint shown when no record is visible.
func EmptyState(query string, directoryChoice bool) (title, subtitle string) {
	if q := strings.TrimSpace(query); q != "" {
		return "No results found", fmt.Sprintf("No PDFs match %q", q)
	}
	if directoryChoice {
		return "No PDFs found", "Select a folder to scan for PDF files [f]"
	}
	return "No PDFs found", "Add PDFs with the document picker [a]"
}

func (v *View) renderSortChooser() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Sort By"))
	b.WriteString("\n\n")
	for i, spec := range domain.AllSortSpecs() {
		line := "  " + spec.Label()
		if spec == v.sort {
			line += " ✓"
		}
		if i == v.sortCursor {
			b.WriteString(v.styles.Selected.Render("> " + strings.TrimPrefix(line, "  ")))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))
	return b.String()
}

func (v *View) renderConfirm() string {
	return v.styles.Danger.Render("Delete PDF") + "\n\n" +
		v.styles.Normal.Render(fmt.Sprintf("Are you sure you want to delete %q?", v.pending.Name)) + "\n\n" +
		v.styles.Help.Render("[y] delete  [any other key] cancel")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.layout()
}

// Records returns every discovered record.
func (v *View) Records() []domain.FileRecord {
	return v.records
}

// Visible returns the filtered and sorted records.
func (v *View) Visible() []domain.FileRecord {
	return v.list.Records()
}

// Mode returns the current input mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Sort returns the active order.
func (v *View) Sort() domain.SortSpec {
	return v.sort
}

// Query returns the search text.
func (v *View) Query() string {
	return v.search.Value()
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.status
}

// Loading reports whether a discovery pass is running.
func (v *View) Loading() bool {
	return v.loading
}

// Opening reports whether an open is in flight.
func (v *View) Opening() bool {
	return v.guard.State() == services.GuardInFlight
}
