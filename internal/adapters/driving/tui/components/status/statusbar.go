// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfshelf/internal/format"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateOpening State = "opening"
	StateNotice  State = "notice"
	StateError   State = "error"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	bindings []key.Binding
	state    State
	message  string
	count    int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:   s,
		bindings: km.ShortHelp(),
		state:    StateReady,
		width:    80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Scanning...")
	case StateOpening:
		return s.styles.Muted.Render("Opening PDF...")
	case StateNotice:
		return s.styles.Warning.Render(s.message)
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateReady:
	}
	return s.styles.Normal.Render(format.Count(s.count, "document"))
}

func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.bindings))
	for _, b := range s.bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetBindings replaces the keybinding hints.
func (s *Bar) SetBindings(bindings []key.Binding) {
	s.bindings = bindings
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Notify shows a dismissible notice.
func (s *Bar) Notify(message string) {
	s.state = StateNotice
	s.message = message
}

// Fail shows an error.
func (s *Bar) Fail(err error) {
	s.state = StateError
	s.message = ""
	if err != nil {
		s.message = err.Error()
	}
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCount sets the document count shown when ready.
func (s *Bar) SetCount(count int) {
	s.count = count
}

// Count returns the current document count.
func (s *Bar) Count() int {
	return s.count
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear dismisses any notice or error.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
