// Package format converts byte counts and timestamps to display strings.
package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// FileSize renders a byte count as "512 B", "1.5 KB", "3.2 MB" or "1.1 GB".
// Negative values are treated as 0.
func FileSize(bytes int64) string {
	switch {
	case bytes < 0:
		return "0 B"
	case bytes < kib:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mib:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kib)
	case bytes < gib:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mib)
	default:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gib)
	}
}

// Date renders a modification time as a short calendar date.
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 2, 2006")
}

// Relative renders t relative to now, e.g. "3 days ago".
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Count renders "1 document" / "3 documents".
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(int64(n)), noun)
}
