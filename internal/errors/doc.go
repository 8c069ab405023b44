// Package errors provides error handling conventions for the fmcheck CLI.
//
// This package re-exports the constructors and inspection helpers from
// github.com/cockroachdb/errors, defines sentinel errors for common failure
// conditions, an ExitError type for CLI exit code handling, and exit code
// constants following standard Unix conventions.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, fmerrors.ErrInvalidConfig) {
//	    // handle bad flags
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): every checked file passed
//   - ExitUser (1): lint failures or invalid flags
//   - ExitSystem (2): unreadable file or malformed front-matter block
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports unwrapping via [Unwrap] and [As]:
//
//	err := fmerrors.NewUserError(fmerrors.ErrInvalidConfig, "Check --minimum_tags")
//	var exitErr *fmerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
