// Package exitcodes provides centralized exit code definitions and error
// handling for the b64img tool. Exit codes are organized in ranges to
// categorize different types of failures:
//
//	0:     Success
//	1-9:   Input/Configuration Errors (e.g., missing input, fetch failures)
//	10-19: Payload Processing Errors (e.g., malformed base64, unknown formats)
//	20-29: Runtime Errors (e.g., I/O errors, system failures)
package exitcodes

import (
	"errors"
	"fmt"
)

// Exit code constants organized by category
const (
	// Success (0)
	ExitSuccess = 0

	// Input/Configuration Errors (1-9)
	ExitMissingInput            = 1 // No payload, file, or URL provided
	ExitInputConfigurationError = 2 // General configuration error
	ExitSourceNotFound          = 3 // Input file not found or unreadable
	ExitFetchFailed             = 4 // Fetching the source URL failed

	// Payload Processing Errors (10-19)
	ExitMalformedPayload  = 10 // Base64 decoding yielded no usable bytes
	ExitUndetectedFormat  = 11 // No signature or declared MIME identified the format
	ExitUnsupportedFormat = 12 // MIME type has no file extension mapping
	ExitNoPayloadsFound   = 13 // Scan found no embedded data URLs

	// Runtime Errors (20-29)
	ExitGeneralRuntimeError = 20 // General runtime/system error
	ExitIOError             = 21 // IO operation error

	// Internal Errors (30-39)
	ExitInternalError = 30 // Internal error in command execution
)

// ExitCodeError wraps an error with an exit code for consistent error handling.
// This type is used throughout the codebase to propagate both error details
// and the appropriate exit code up the call stack.
type ExitCodeError struct {
	Code int   // Exit code to return
	Err  error // Underlying error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d: %v", e.Code, e.Err)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// IsExitCodeError checks if an error is an ExitCodeError and returns its code.
// Returns false and 0 if the error is not an ExitCodeError.
func IsExitCodeError(err error) (int, bool) {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// CodeDescriptions maps exit codes to their human-readable descriptions
var CodeDescriptions = map[int]string{
	ExitSuccess:                 "Success",
	ExitMissingInput:            "No payload, file, or URL provided",
	ExitInputConfigurationError: "General configuration error",
	ExitSourceNotFound:          "Input file not found or unreadable",
	ExitFetchFailed:             "Fetching the source URL failed",
	ExitMalformedPayload:        "Base64 decoding yielded no usable bytes",
	ExitUndetectedFormat:        "No signature or declared MIME identified the format",
	ExitUnsupportedFormat:       "MIME type has no file extension mapping",
	ExitNoPayloadsFound:         "Scan found no embedded data URLs",
	ExitGeneralRuntimeError:     "General runtime/system error",
	ExitIOError:                 "IO operation error",
	ExitInternalError:           "Internal error in command execution",
}
