package bolt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

func TestSelectionStore_RoundTripAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)

	_, ok, err := store.SelectionStore().Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SelectionStore().Set(ctx, "file:///home/me/Docs"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	loc, ok, err := reopened.SelectionStore().Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.Locator("file:///home/me/Docs"), loc)
}

func TestSelectionStore_Clear(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	sel := store.SelectionStore()
	require.NoError(t, sel.Set(ctx, "s3://bucket/docs"))
	require.NoError(t, sel.Clear(ctx))

	_, ok, err := sel.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
