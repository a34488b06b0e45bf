package domain

import "time"

// FileRecord represents one discovered document.
type FileRecord struct {
	// ID is unique per discovered instance. It is the source locator
	// before deduplication and is only stable within one discovery pass.
	ID string

	// Name is the leaf file name.
	Name string

	// Size is the byte size, 0 if unknown.
	Size int64

	// ModifiedAt is the last modification time. Discovery falls back to
	// the scan time when the filesystem does not report one.
	ModifiedAt time.Time

	// Locator addresses the underlying bytes.
	Locator Locator
}

// ModifiedMillis returns ModifiedAt as milliseconds since the Unix epoch.
// A zero time maps to 0.
func (r FileRecord) ModifiedMillis() int64 {
	if r.ModifiedAt.IsZero() {
		return 0
	}
	return r.ModifiedAt.UnixMilli()
}

// DedupKey returns the (name, size) identity used to collapse duplicates.
func (r FileRecord) DedupKey() RecordKey {
	return RecordKey{Name: r.Name, Size: r.Size}
}

// RecordKey identifies a logical file across addressing schemes.
type RecordKey struct {
	Name string
	Size int64
}
