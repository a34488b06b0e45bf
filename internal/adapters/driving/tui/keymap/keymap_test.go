package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"open", km.Open, []string{"enter"}},
		{"search", km.Search, []string{"/"}},
		{"sort", km.Sort, []string{"s"}},
		{"share", km.Share, []string{"x"}},
		{"delete", km.Delete, []string{"d"}},
		{"confirm", km.Confirm, []string{"y"}},
		{"reload", km.Reload, []string{"r"}},
		{"folder", km.Folder, []string{"f"}},
		{"import", km.Import, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()

	require.Len(t, help, 2)
	assert.Equal(t, "quit", help[0].Help().Desc)
	assert.Equal(t, "help", help[1].Help().Desc)
}

func TestKeyMap_LibraryHelp_DirectoryChoice(t *testing.T) {
	km := DefaultKeyMap()

	help := km.LibraryHelp(true)

	descs := make([]string, 0, len(help))
	for _, b := range help {
		descs = append(descs, b.Help().Desc)
	}
	assert.Contains(t, descs, "folder")
	assert.NotContains(t, descs, "add")
}

func TestKeyMap_LibraryHelp_Sandbox(t *testing.T) {
	km := DefaultKeyMap()

	help := km.LibraryHelp(false)

	descs := make([]string, 0, len(help))
	for _, b := range help {
		descs = append(descs, b.Help().Desc)
	}
	assert.Contains(t, descs, "add")
	assert.NotContains(t, descs, "folder")
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	assert.Len(t, groups, 5)
	for _, g := range groups {
		assert.NotEmpty(t, g)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("d", km.Delete))
	assert.False(t, Matches("x", km.Delete))
	assert.False(t, Matches("", km.Quit))
}
