// Package domain defines the core entities for pdfshelf.
//
// This package is the innermost layer of the hexagonal architecture.
// It has NO external dependencies and defines the fundamental types:
//
//   - FileRecord: One discovered PDF document
//   - Locator: An opaque handle addressing bytes (file://, s3://, content://)
//   - Entry: A tagged directory-or-file value returned by a FileSystem
//   - SortSpec: One of the six orderings applied to a record list
//   - PlatformMode: Which discovery root policy is active
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
