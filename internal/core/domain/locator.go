package domain

import (
	"path/filepath"
	"strings"
)

// Locator schemes.
const (
	SchemeFile    = "file"
	SchemeS3      = "s3"
	SchemeContent = "content"
)

// Locator is an opaque handle usable by file operations to read, copy,
// delete or share the underlying bytes. It always carries a scheme prefix.
type Locator string

// FileLocator builds a direct-path locator from a local filesystem path.
func FileLocator(path string) Locator {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return Locator(SchemeFile + "://" + filepath.ToSlash(path))
}

// ParseLocator accepts either a locator with a scheme or a bare local path.
func ParseLocator(s string) (Locator, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidInput
	}
	if strings.Contains(s, "://") {
		return Locator(s), nil
	}
	return FileLocator(s), nil
}

// Scheme returns the locator scheme, e.g. "file" or "s3".
func (l Locator) Scheme() string {
	if i := strings.Index(string(l), "://"); i > 0 {
		return strings.ToLower(string(l)[:i])
	}
	return ""
}

// IsDirectPath reports whether the locator addresses a local path directly.
func (l Locator) IsDirectPath() bool {
	return l.Scheme() == SchemeFile
}

// Path returns the local filesystem path for a direct-path locator,
// or an empty string for any other scheme.
func (l Locator) Path() string {
	if !l.IsDirectPath() {
		return ""
	}
	return filepath.FromSlash(strings.TrimPrefix(string(l)[len(SchemeFile):], "://"))
}

// Opaque returns everything after "scheme://".
func (l Locator) Opaque() string {
	if i := strings.Index(string(l), "://"); i > 0 {
		return string(l)[i+3:]
	}
	return string(l)
}

// Base returns the leaf name addressed by the locator.
func (l Locator) Base() string {
	rest := strings.TrimRight(l.Opaque(), "/")
	if i := strings.LastIndex(rest, "/"); i >= 0 {
		return rest[i+1:]
	}
	return rest
}

// Join appends a child name to a directory locator.
func (l Locator) Join(name string) Locator {
	base := string(l)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return Locator(base + name)
}

// Within reports whether the locator lies under dir (same scheme, path prefix).
func (l Locator) Within(dir Locator) bool {
	if dir == "" || l.Scheme() != dir.Scheme() {
		return false
	}
	prefix := strings.TrimRight(string(dir), "/") + "/"
	return strings.HasPrefix(string(l), prefix)
}

// String implements fmt.Stringer.
func (l Locator) String() string {
	return string(l)
}
