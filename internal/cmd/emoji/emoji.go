// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output.
const (
	// Success marks completed operations and agreeing sources.
	Success = "✓"

	// Error marks failures and sources that lack a plugin.
	Error = "✗"

	// Warning marks non-fatal problems such as skipped sources.
	// Used for: skipped inventories, stale versions.
	Warning = "!"

	// Info marks informational messages.
	Info = "i"

	// Unknown represents unknown or indeterminate states.
	Unknown = "?"
)
