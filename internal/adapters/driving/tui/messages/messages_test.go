package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewLibrary, "library"},
		{ViewViewer, "viewer"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_LibraryIsZero(t *testing.T) {
	var v ViewType

	assert.Equal(t, ViewLibrary, v)
}

func TestDocumentImported_NilRecordMeansCancelled(t *testing.T) {
	msg := DocumentImported{}

	assert.Nil(t, msg.Record)
	assert.NoError(t, msg.Err)
}

func TestDocumentPrepared_CarriesLocator(t *testing.T) {
	rec := domain.FileRecord{Name: "a.pdf", Locator: domain.Locator("content://x/a.pdf")}
	msg := DocumentPrepared{Record: rec, Locator: domain.FileLocator("/cache/a.pdf")}

	assert.Equal(t, "a.pdf", msg.Record.Name)
	assert.True(t, msg.Locator.IsDirectPath())
	assert.False(t, msg.Record.Locator.IsDirectPath())
}
