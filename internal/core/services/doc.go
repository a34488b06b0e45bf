// Package services implements the driving port interfaces.
// Services contain the core logic (discovery, deduplication, presentation
// and file operations) and orchestrate calls to driven ports (adapters).
package services
