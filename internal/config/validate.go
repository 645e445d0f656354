package config

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidMode indicates an unrecognized agent mode.
	ErrInvalidMode = errors.New("agent mode must be \"single\" or \"team\"")

	// ErrInvalidLimit indicates a non-positive loop or token limit.
	ErrInvalidLimit = errors.New("limit must be positive")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// PathError reports an invalid path in a named config field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error { return e.Err }

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	switch cfg.Agent.Mode {
	case "", "single", "team":
	default:
		errs = append(errs, errors.Wrapf(ErrInvalidMode, "got %q", cfg.Agent.Mode))
	}

	if cfg.Agent.MaxSteps < 1 {
		errs = append(errs, errors.Wrap(ErrInvalidLimit, "agent.max_steps"))
	}
	if cfg.Agent.MaxTokens < 1 {
		errs = append(errs, errors.Wrap(ErrInvalidLimit, "agent.max_tokens"))
	}

	for _, dir := range cfg.Skills.Dirs {
		if err := validatePath(dir); err != nil {
			errs = append(errs, &PathError{Field: "skills.dirs", Path: dir, Err: err})
		}
	}

	return errs
}

// validatePath checks that a path string is syntactically valid.
// It does not check existence.
func validatePath(path string) error {
	if path == "" {
		return errors.Wrap(ErrInvalidPath, "empty path")
	}
	if strings.ContainsRune(path, '\x00') {
		return errors.Wrap(ErrInvalidPath, "path contains null byte")
	}
	return nil
}
