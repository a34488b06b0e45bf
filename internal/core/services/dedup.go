package services

import (
	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

// Deduplicate keeps at most one record per (name, size) pair.
//
// Records are scanned in order. The first record for a key is kept unless a
// later one has a direct-path locator while the kept one does not. Output
// keeps the order in which keys were first seen.
func Deduplicate(records []domain.FileRecord) []domain.FileRecord {
	index := make(map[domain.RecordKey]int, len(records))
	unique := make([]domain.FileRecord, 0, len(records))

	for _, record := range records {
		key := record.DedupKey()
		i, seen := index[key]
		if !seen {
			index[key] = len(unique)
			unique = append(unique, record)
			continue
		}
		if record.Locator.IsDirectPath() && !unique[i].Locator.IsDirectPath() {
			unique[i] = record
		}
	}

	if removed := len(records) - len(unique); removed > 0 {
		logger.Debug("removed %d duplicate documents", removed)
	}
	return unique
}
