// Package errors provides error handling conventions for the skillet CLI.
//
// It defines sentinel errors for common failure conditions, an ExitError
// type carrying an exit code and an optional user-facing suggestion, and
// re-exports of the cockroachdb/errors constructors so the rest of the
// codebase imports a single errors package.
//
// Callers check sentinels with [Is]:
//
//	if errors.Is(err, errors.ErrSkillNotFound) {
//	    // handle missing skill
//	}
//
// The CLI entry point extracts the process exit code with [ExitCode] and
// prints ExitError.Suggestion when present.
package errors
