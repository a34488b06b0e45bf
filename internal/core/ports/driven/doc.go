// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - FileSystem: Listing, stat, copy and delete over one or more locator schemes
//   - Platform: Discovery root policy and app-owned storage areas
//   - SelectionStore: Persistence of the user-chosen root directory
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DocumentPicker: Without it, Import reports ErrPickerUnavailable.
//   - ShareSheet: Without it, Share is a no-op.
//   - Watcher: Without it, the library reloads only on request.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
