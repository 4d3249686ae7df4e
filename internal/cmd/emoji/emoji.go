// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
// These symbols are used for status indicators, alerts, and user feedback in terminal output.
const (
	// Success symbols indicate positive outcomes.

	// Success represents successful completion of an operation.
	// Used for: written accounts, runs with nothing to do.
	Success = "✓"

	// Error and warning symbols indicate problems.

	// Error represents failures.
	// Used for: failed loads and writes.
	Error = "✗"

	// Warning represents warnings or non-critical issues.
	// Used for: skipped accounts, conflicts left for manual resolution.
	Warning = "!"

	// Change symbols describe write instructions.

	// Add represents a note an account did not have.
	Add = "+"

	// Update represents a note replacing a different one.
	Update = "~"

	// Remove represents a note deleted through the "[Delete]" marker.
	Remove = "-"

	// Unknown represents unknown or indeterminate states.
	Unknown = "?"

	// Information and progress symbols.

	// Info represents informational messages.
	// Used for: simulation notices, declined confirmations.
	Info = "i"
)
