package share

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

func newTestOpener(command string) (*Opener, *[]string) {
	var launched []string
	o := New(command)
	o.lookPath = func(name string) (string, error) {
		if name == "missing" {
			return "", exec.ErrNotFound
		}
		return "/usr/bin/" + name, nil
	}
	o.start = func(cmd *exec.Cmd) error {
		launched = cmd.Args
		return nil
	}
	return o, &launched
}

func TestOpener_CustomCommandPlaceholder(t *testing.T) {
	o, launched := newTestOpener("zathura --fork {}")

	err := o.Share(context.Background(), domain.FileLocator("/tmp/a.pdf"), domain.ShareOptions{Title: "a.pdf"})
	require.NoError(t, err)
	assert.Equal(t, []string{"zathura", "--fork", "/tmp/a.pdf"}, *launched)
}

func TestOpener_CustomCommandAppendsPath(t *testing.T) {
	o, launched := newTestOpener("evince")

	err := o.Share(context.Background(), domain.FileLocator("/tmp/a.pdf"), domain.ShareOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"evince", "/tmp/a.pdf"}, *launched)
}

func TestOpener_Available(t *testing.T) {
	present, _ := newTestOpener("evince")
	assert.True(t, present.Available(context.Background()))

	absent, _ := newTestOpener("missing")
	assert.False(t, absent.Available(context.Background()))
}

func TestOpener_RejectsIndirectLocator(t *testing.T) {
	o, launched := newTestOpener("evince")

	err := o.Share(context.Background(), "s3://bucket/a.pdf", domain.ShareOptions{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedScheme)
	assert.Nil(t, *launched)
}

func TestOpener_StartFailure(t *testing.T) {
	o, _ := newTestOpener("evince")
	o.start = func(*exec.Cmd) error { return errors.New("boom") }

	err := o.Share(context.Background(), domain.FileLocator("/tmp/a.pdf"), domain.ShareOptions{})
	assert.ErrorContains(t, err, "boom")
}

func TestDefaultCommand(t *testing.T) {
	assert.Equal(t, []string{"open"}, defaultCommand("darwin"))
	assert.Equal(t, []string{"xdg-open"}, defaultCommand("linux"))
	assert.Equal(t, []string{"rundll32", "url.dll,FileProtocolHandler"}, defaultCommand("windows"))
	assert.Nil(t, defaultCommand("plan9"))
}
