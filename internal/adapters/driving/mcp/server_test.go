package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfshelf/internal/core/services"
)

func TestNewServer(t *testing.T) {
	t.Run("nil library service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Presenter: services.NewPresenter("en")})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingLibraryService)
	})

	t.Run("nil presenter returns error", func(t *testing.T) {
		_, err := NewServer(&Ports{Library: &mockLibraryService{}})
		assert.ErrorIs(t, err, ErrMissingPresenter)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Library:   &mockLibraryService{},
			Presenter: services.NewPresenter("en"),
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestServer_Handler(t *testing.T) {
	server, err := NewServer(&Ports{
		Library:   &mockLibraryService{},
		Presenter: services.NewPresenter("en"),
	})
	require.NoError(t, err)

	assert.NotNil(t, server.Handler())
}

func TestServer_RunHTTPStopsWithContext(t *testing.T) {
	server, err := NewServer(&Ports{
		Library:   &mockLibraryService{},
		Presenter: services.NewPresenter("en"),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, server.RunHTTP(ctx, "127.0.0.1:0"))
}

func TestServer_RunHTTPBadAddress(t *testing.T) {
	server, err := NewServer(&Ports{
		Library:   &mockLibraryService{},
		Presenter: services.NewPresenter("en"),
	})
	require.NoError(t, err)

	err = server.RunHTTP(context.Background(), "not-an-address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serving mcp on not-an-address")
}
