package domain

import (
	"fmt"
	"strings"
)

// PlatformMode selects the discovery root policy.
type PlatformMode string

const (
	// PlatformDirectory scans a single user-chosen directory.
	PlatformDirectory PlatformMode = "directory"

	// PlatformSandbox scans the fixed app-document and app-cache areas.
	PlatformSandbox PlatformMode = "sandbox"
)

// ParsePlatformMode validates a configured platform mode.
func ParsePlatformMode(s string) (PlatformMode, error) {
	switch PlatformMode(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformDirectory:
		return PlatformDirectory, nil
	case PlatformSandbox:
		return PlatformSandbox, nil
	default:
		return "", fmt.Errorf("%w: unknown platform mode %q", ErrInvalidInput, s)
	}
}

// PickedDocument is what a document picker returns on acceptance.
type PickedDocument struct {
	Locator Locator
	Name    string
	Size    int64
}

// ShareOptions are hints passed to the share/open hand-off.
type ShareOptions struct {
	MIMEType string
	Title    string
}

// PDFMIMEType is the content-type hint used for every hand-off.
const PDFMIMEType = "application/pdf"
