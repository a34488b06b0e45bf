package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfshelf/internal/adapters/driving/tui/styles"
)

func TestNewPrompt(t *testing.T) {
	p := NewPrompt(styles.DefaultStyles(), "Search", "Search PDFs...")

	require.NotNil(t, p)
	assert.Equal(t, "", p.Value())
	assert.Equal(t, "Search", p.Label())
	assert.False(t, p.Focused())
}

func TestNewPrompt_NilStyles(t *testing.T) {
	p := NewPrompt(nil, "Folder", "")

	require.NotNil(t, p)
	assert.NotNil(t, p.styles)
}

func TestPrompt_FocusAndBlur(t *testing.T) {
	p := NewPrompt(nil, "Search", "")

	cmd := p.Focus()
	assert.NotNil(t, cmd)
	assert.True(t, p.Focused())

	p.Blur()
	assert.False(t, p.Focused())
}

func TestPrompt_TypingWhenFocused(t *testing.T) {
	p := NewPrompt(nil, "Search", "")
	p.Focus()

	for _, r := range "report" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "report", p.Value())
}

func TestPrompt_IgnoresTypingWhenBlurred(t *testing.T) {
	p := NewPrompt(nil, "Search", "")

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.Equal(t, "", p.Value())
}

func TestPrompt_SetValueAndReset(t *testing.T) {
	p := NewPrompt(nil, "Folder", "")

	p.SetValue("~/Documents")
	assert.Equal(t, "~/Documents", p.Value())

	p.Reset()
	assert.Equal(t, "", p.Value())
}

func TestPrompt_SetWidth(t *testing.T) {
	p := NewPrompt(nil, "Search", "")

	p.SetWidth(100)
	assert.Equal(t, 100, p.Width())

	p.SetWidth(5)
	assert.Equal(t, 5, p.Width())
	assert.Equal(t, 20, p.textinput.Width)
}

func TestPrompt_View(t *testing.T) {
	p := NewPrompt(nil, "Search", "")

	assert.Contains(t, p.View(), "Search:")
}
