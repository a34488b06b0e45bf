// Package filesystem routes file operations to the adapter owning a
// locator's scheme.
//
// Sub-packages provide the concrete adapters:
//
//   - local: direct-path (file://) locators on the host filesystem
//   - objectstore: s3:// locators on an S3-compatible object store
//   - memory: an in-memory tree used in tests
package filesystem
