package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

func TestFindRecord(t *testing.T) {
	records := []domain.FileRecord{
		rec("file:///a/report.pdf", "report.pdf", 1, "file:///a/report.pdf"),
		rec("file:///b/Report.PDF", "Report.PDF", 2, "file:///b/Report.PDF"),
		rec("file:///c/dup.pdf", "dup.pdf", 3, "file:///c/dup.pdf"),
		rec("file:///d/dup.pdf", "dup.pdf", 4, "file:///d/dup.pdf"),
		rec("s3://bucket/Invoice.pdf", "Invoice.pdf", 5, "s3://bucket/Invoice.pdf"),
	}

	tests := []struct {
		name    string
		ref     string
		wantID  string
		wantErr error
	}{
		{name: "exact name wins over folded", ref: "report.pdf", wantID: "file:///a/report.pdf"},
		{name: "case insensitive", ref: "invoice.pdf", wantID: "s3://bucket/Invoice.pdf"},
		{name: "locator", ref: "file:///d/dup.pdf", wantID: "file:///d/dup.pdf"},
		{name: "ambiguous", ref: "dup.pdf", wantErr: domain.ErrInvalidInput},
		{name: "missing", ref: "nope.pdf", wantErr: domain.ErrNotFound},
		{name: "blank", ref: "  ", wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRecord(records, tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}
