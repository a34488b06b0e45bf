// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view or cancels a prompt.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Open opens the selected document.
	Open key.Binding

	// Search focuses the search box.
	Search key.Binding

	// Sort opens the sort chooser.
	Sort key.Binding

	// Share shares the selected document.
	Share key.Binding

	// Delete asks to delete the selected document.
	Delete key.Binding

	// Confirm accepts a pending confirmation.
	Confirm key.Binding

	// Reload rescans the library.
	Reload key.Binding

	// Folder chooses the folder to scan.
	Folder key.Binding

	// Import adds a document through the picker.
	Import key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Share: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "share"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Folder: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "folder"),
		),
		Import: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// LibraryHelp returns keybindings for the library view.
// choice selects between the folder and import actions.
func (k *KeyMap) LibraryHelp(choice bool) []key.Binding {
	bindings := []key.Binding{k.Open, k.Search, k.Sort, k.Share, k.Delete, k.Reload}
	if choice {
		return append(bindings, k.Folder)
	}
	return append(bindings, k.Import)
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Search, k.Sort, k.Reload},
		{k.Share, k.Delete, k.Confirm},
		{k.Folder, k.Import},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
