package domain

import "time"

// EntryKind tags an Entry as a directory or a file.
type EntryKind int

const (
	// EntryFile is a regular file.
	EntryFile EntryKind = iota
	// EntryDirectory is a directory (or an object-store prefix).
	EntryDirectory
)

// String returns the string representation of the entry kind.
func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Entry is one child returned by listing a directory.
type Entry struct {
	Kind    EntryKind
	Locator Locator
	Name    string

	// Size is zero for directories.
	Size int64

	// ModTime is zero when the filesystem does not report one.
	ModTime time.Time
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == EntryDirectory
}
