package format

import (
	"time"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// Row is the serialisable view of a record used by JSON and YAML output.
type Row struct {
	Name     string `json:"name" yaml:"name"`
	Size     int64  `json:"size" yaml:"size"`
	SizeText string `json:"size_text" yaml:"size_text"`
	Modified string `json:"modified" yaml:"modified"`
	Locator  string `json:"locator" yaml:"locator"`
}

// NewRow converts a record. Modified is RFC 3339 in UTC, or empty when unknown.
func NewRow(r domain.FileRecord) Row {
	modified := ""
	if !r.ModifiedAt.IsZero() {
		modified = r.ModifiedAt.UTC().Format(time.RFC3339)
	}
	return Row{
		Name:     r.Name,
		Size:     r.Size,
		SizeText: FileSize(r.Size),
		Modified: modified,
		Locator:  r.Locator.String(),
	}
}

// Rows converts a record list.
func Rows(records []domain.FileRecord) []Row {
	rows := make([]Row, len(records))
	for i := range records {
		rows[i] = NewRow(records[i])
	}
	return rows
}
