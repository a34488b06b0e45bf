package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLocator(t *testing.T) {
	t.Run("absolute path round trips", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "a.pdf")

		loc := FileLocator(path)

		assert.Equal(t, SchemeFile, loc.Scheme())
		assert.True(t, loc.IsDirectPath())
		assert.Equal(t, path, loc.Path())
		assert.Equal(t, "a.pdf", loc.Base())
	})
}

func TestParseLocator(t *testing.T) {
	t.Run("keeps scheme locators", func(t *testing.T) {
		loc, err := ParseLocator("s3://bucket/docs/")
		require.NoError(t, err)
		assert.Equal(t, Locator("s3://bucket/docs/"), loc)
		assert.False(t, loc.IsDirectPath())
		assert.Empty(t, loc.Path())
	})

	t.Run("bare path becomes file locator", func(t *testing.T) {
		loc, err := ParseLocator("/tmp/x.pdf")
		require.NoError(t, err)
		assert.True(t, loc.IsDirectPath())
	})

	t.Run("empty is invalid", func(t *testing.T) {
		_, err := ParseLocator("  ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestLocator_JoinAndWithin(t *testing.T) {
	dir := Locator("s3://bucket/docs")
	child := dir.Join("q3.pdf")

	assert.Equal(t, Locator("s3://bucket/docs/q3.pdf"), child)
	assert.True(t, child.Within(dir))
	assert.False(t, dir.Within(dir))
	assert.False(t, Locator("file:///bucket/docs/q3.pdf").Within(dir))
	assert.False(t, child.Within(""))
}

func TestLocator_Base(t *testing.T) {
	assert.Equal(t, "docs", Locator("s3://bucket/docs/").Base())
	assert.Equal(t, "bucket", Locator("s3://bucket").Base())
	assert.Equal(t, "", Locator("").Scheme())
}
