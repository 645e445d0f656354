package errors

import (
	"fmt"

	crdberrors "github.com/cockroachdb/errors"
)

// Exit codes returned to the operating system.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, network, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = crdberrors.New("not found")

	// ErrSkillNotFound indicates no skill with the requested name is loaded.
	ErrSkillNotFound = crdberrors.New("skill not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdberrors.New("invalid configuration")

	// ErrMissingAPIKey indicates no Anthropic API key is available.
	ErrMissingAPIKey = crdberrors.New("ANTHROPIC_API_KEY is not set")

	// ErrMaxStepsExceeded indicates the agent loop hit its step ceiling
	// without the model producing a final answer.
	ErrMaxStepsExceeded = crdberrors.New("maximum agent steps exceeded")

	// ErrDuplicateTool indicates two tools were registered under one name.
	ErrDuplicateTool = crdberrors.New("duplicate tool name")
)

// Re-exports so callers need only this package for error construction
// and inspection. All delegate to cockroachdb/errors, which preserves
// wrapping semantics compatible with the standard library.
var (
	New    = crdberrors.New
	Newf   = crdberrors.Newf
	Wrap   = crdberrors.Wrap
	Wrapf  = crdberrors.Wrapf
	Is     = crdberrors.Is
	As     = crdberrors.As
	Unwrap = crdberrors.Unwrap
	Join   = crdberrors.Join
)

// ExitError wraps an error with an exit code and optional suggestion for
// the CLI. It implements the error interface and supports unwrapping.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: skillet doctor",
	}
}

// Error returns the message from the underlying error, or a generic
// message with the exit code when the underlying error is nil.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the exit code from an error chain. Errors that do
// not carry an ExitError map to ExitUser; nil maps to ExitSuccess.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}
