package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `msg="test message arg"`)
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")
	Info("info")
	Warn("warn")

	assert.Zero(t, buf.Len(), "expected no output when verbose is disabled")
}

func TestError_AlwaysWritten(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("delete failed: %v", os.ErrPermission)

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "permission denied")
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Discovery")

	assert.Equal(t, "\n=== Discovery ===\n", buf.String())
}

func TestInfoAndWarn(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("info message %d", 42)
	Warn("warning message")

	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), `msg="info message 42"`)
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestOpenFile(t *testing.T) {
	defer reset()
	SetVerbose(true)

	path := filepath.Join(t.TempDir(), "logs", "pdfshelf.log")
	closer, err := OpenFile(path)
	require.NoError(t, err)

	Info("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestOutput(t *testing.T) {
	defer reset()

	assert.Equal(t, os.Stderr, Output())

	var buf bytes.Buffer
	SetOutput(&buf)
	assert.Equal(t, &buf, Output())

	closer, err := OpenFile(filepath.Join(t.TempDir(), "pdfshelf.log"))
	require.NoError(t, err)
	assert.NotEqual(t, os.Stderr, Output())

	require.NoError(t, closer.Close())
	assert.Equal(t, os.Stderr, Output())
}

func TestConcurrentAccess(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
