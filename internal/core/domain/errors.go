package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a locator no longer resolves.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotDirectory indicates a locator resolves to a file where a directory was expected.
	ErrNotDirectory = errors.New("not a directory")

	// ErrUnsupportedScheme indicates no filesystem adapter handles a locator's scheme.
	ErrUnsupportedScheme = errors.New("unsupported locator scheme")

	// ErrPreparationFailed indicates a document could not be made viewable.
	ErrPreparationFailed = errors.New("preparation failed")

	// ErrShareUnavailable indicates the share/open hand-off is not available on this machine.
	ErrShareUnavailable = errors.New("sharing is not available")

	// ErrDirectoryChoiceUnsupported indicates the active platform scans fixed roots only.
	ErrDirectoryChoiceUnsupported = errors.New("directory choice not supported on this platform")

	// ErrPickerUnavailable indicates no document picker is configured.
	ErrPickerUnavailable = errors.New("document picker unavailable")

	// ErrDeleteFailed indicates a file could not be removed.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrBusy indicates an operation of the same kind is already in flight.
	ErrBusy = errors.New("operation in progress")
)
