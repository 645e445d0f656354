package validator

import "fmt"

// ValidationError describes a single validation failure.
type ValidationError struct {
	// Field is the skill field that failed validation.
	Field string

	// Message is a human-readable description of the failure.
	Message string

	// Value is the offending value, when useful.
	Value string

	// Context carries extra key-value detail (paths, directories).
	Context map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
