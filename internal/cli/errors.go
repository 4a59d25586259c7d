// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts and agents.
const (
	// Target CLI errors
	ErrCLINotFound = "CLI_NOT_FOUND"
	ErrProbeFailed = "PROBE_FAILED"

	// Wire format errors
	ErrParseFailed = "PARSE_FAILED"

	// Compliance errors
	ErrValidationFailed = "VALIDATION_FAILED"

	// Output errors
	ErrRenderFailed = "RENDER_FAILED"
	ErrWriteFailed  = "FILE_WRITE_ERROR"

	// Setup errors
	ErrConfigInvalid = "CONFIG_INVALID"
	ErrInvalidInput  = "INVALID_INPUT"
)
