// Package viewer provides the single-document hand-off screen. It checks the
// prepared copy exists, shows its size and passes it to the external viewer.
package viewer

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driving"
	"github.com/custodia-labs/pdfshelf/internal/format"
)

// Messages shown on the screen.
const (
	ErrorNotFound       = "PDF file not found"
	ErrorHandOff        = "Failed to open PDF in external viewer"
	NoticeUnavailable   = "Sharing is not available on this device"
	NoticeOpened        = "PDF opened in your default viewer app"
	ActionOpenAgainText = "Open Again"
	ActionBackText      = "Back to List"
)

// Action is a button on the screen.
type Action int

const (
	ActionOpenAgain Action = iota
	ActionBack
)

// View is the hand-off screen.
type View struct {
	styles  *styles.Styles
	library driving.LibraryService
	ctx     context.Context
	now     func() time.Time

	record  domain.FileRecord
	locator domain.Locator
	entry   *domain.Entry

	checking bool
	err      string
	notice   string
	action   Action

	width  int
	height int
}

// NewView creates a viewer screen.
func NewView(s *styles.Styles, library driving.LibraryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		library: library,
		ctx:     context.Background(),
		now:     time.Now,
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithClock sets the clock used for relative modification times.
func (v *View) WithClock(now func() time.Time) *View {
	v.now = now
	return v
}

// SetDocument resets the screen for a prepared record and starts the
// existence check.
func (v *View) SetDocument(record domain.FileRecord, loc domain.Locator) tea.Cmd {
	v.record = record
	v.locator = loc
	v.entry = nil
	v.err = ""
	v.notice = ""
	v.action = ActionOpenAgain
	v.checking = true

	if v.library == nil {
		return nil
	}
	ctx, lib := v.ctx, v.library
	return func() tea.Msg {
		entry, err := lib.Inspect(ctx, loc)
		return messages.DocumentInspected{Locator: loc, Entry: entry, Err: err}
	}
}

// Update handles messages for the viewer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DocumentInspected:
		if msg.Locator != v.locator {
			return v, nil
		}
		v.checking = false
		if msg.Err != nil || msg.Entry == nil || msg.Entry.IsDir() {
			v.err = ErrorNotFound
			return v, nil
		}
		v.entry = msg.Entry
		return v, v.handOff()

	case messages.HandOffCompleted:
		switch {
		case errors.Is(msg.Err, domain.ErrShareUnavailable):
			v.notice = NoticeUnavailable
		case msg.Err != nil:
			v.notice = ErrorHandOff
		default:
			v.notice = NoticeOpened
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.err != "" || v.checking {
		switch msg.String() {
		case "esc", "enter", "q":
			return v, back
		}
		return v, nil
	}

	switch msg.String() {
	case "up", "k", "left", "h", "shift+tab":
		v.action = ActionOpenAgain
	case "down", "j", "right", "l", "tab":
		v.action = ActionBack
	case "o":
		return v, v.handOff()
	case "esc", "b", "q":
		return v, back
	case "enter":
		if v.action == ActionBack {
			return v, back
		}
		return v, v.handOff()
	}
	return v, nil
}

func back() tea.Msg {
	return messages.ViewChanged{View: messages.ViewLibrary}
}

func (v *View) handOff() tea.Cmd {
	if v.library == nil {
		return nil
	}
	ctx, lib, loc, name := v.ctx, v.library, v.locator, v.record.Name
	return func() tea.Msg {
		return messages.HandOffCompleted{Err: lib.HandOff(ctx, loc, name)}
	}
}

// View renders the viewer.
func (v *View) View() string {
	var b strings.Builder

	switch {
	case v.checking:
		b.WriteString(v.styles.Muted.Render("Opening PDF..."))
	case v.err != "":
		b.WriteString(v.styles.Error.Render("⚠ " + v.err))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Please try again"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Selected.Render(" Go Back "))
	default:
		b.WriteString(v.styles.Title.Render(v.record.Name))
		b.WriteString("\n")
		if v.entry != nil {
			b.WriteString(v.styles.Muted.Render(format.FileSize(v.entry.Size)))
			b.WriteString("\n")
		}
		if !v.record.ModifiedAt.IsZero() {
			b.WriteString(v.styles.Muted.Render("Modified " + format.Relative(v.record.ModifiedAt, v.now())))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if v.notice != "" {
			style := v.styles.Muted
			if v.notice != NoticeOpened {
				style = v.styles.Warning
			}
			b.WriteString(style.Render(v.notice))
			b.WriteString("\n\n")
		}
		b.WriteString(v.button(ActionOpenAgain, ActionOpenAgainText))
		b.WriteString("  ")
		b.WriteString(v.button(ActionBack, ActionBackText))
	}

	card := v.styles.Card.Render(b.String())
	help := v.styles.Help.Render("[tab] switch  [enter] select  [o] open again  [esc] back")
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.Place(v.width, max(v.height-2, 1), lipgloss.Center, lipgloss.Center, card) + "\n" + help
}

func (v *View) button(a Action, label string) string {
	if v.action == a {
		return v.styles.Selected.Render(" " + label + " ")
	}
	return v.styles.Normal.Render(" " + label + " ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Record returns the record being shown.
func (v *View) Record() domain.FileRecord {
	return v.record
}

// Locator returns the prepared locator.
func (v *View) Locator() domain.Locator {
	return v.locator
}

// Err returns the error text, if any.
func (v *View) Err() string {
	return v.err
}

// Notice returns the notice text, if any.
func (v *View) Notice() string {
	return v.notice
}

// SelectedAction returns the highlighted button.
func (v *View) SelectedAction() Action {
	return v.action
}
