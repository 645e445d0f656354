// Package validator validates skill files before they are served to
// agents or published.
package validator

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/skillet-ai/skillet/internal/skill"
)

const (
	// maxNameLength is the maximum allowed length for skill names.
	maxNameLength = 64

	// maxDescriptionLength keeps descriptions usable as tool hints.
	maxDescriptionLength = 1024
)

// nameRegex validates skill names: lowercase alphanumeric segments
// joined by single hyphens.
var nameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validator checks skills for structural problems.
type Validator struct{}

// New creates a Validator.
func New() *Validator {
	return &Validator{}
}

// Validate checks a Skill. Returns a slice of validation errors, or nil
// if valid.
func (v *Validator) Validate(s *skill.Skill) []error {
	var errs []error
	errs = append(errs, v.validateName(s.Name)...)
	errs = append(errs, v.validateDescription(s.Description)...)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateWithPath validates a Skill and, for SKILL.md-style skills,
// additionally requires the containing directory to match the skill
// name. Flat *.skill.md files are exempt from the directory rule.
func (v *Validator) ValidateWithPath(s *skill.Skill, path string) []error {
	errs := v.Validate(s)

	if s.Name != "" && filepath.Base(path) == "SKILL.md" {
		dir := filepath.Base(filepath.Dir(path))
		if dir != s.Name {
			errs = append(errs, &ValidationError{
				Field:   "name",
				Message: "skill name must match directory name",
				Value:   s.Name,
				Context: map[string]string{
					"directory": dir,
					"path":      path,
				},
			})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (v *Validator) validateName(name string) []error {
	var errs []error

	if name == "" {
		return append(errs, &ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(name) > maxNameLength {
		errs = append(errs, &ValidationError{
			Field:   "name",
			Message: "name exceeds maximum length of 64 characters",
			Value:   name,
		})
	}

	if !nameRegex.MatchString(name) {
		msg := "name must be lowercase alphanumeric with single hyphens between segments"
		switch {
		case strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-"):
			msg = "name cannot start or end with a hyphen"
		case strings.Contains(name, "--"):
			msg = "name cannot contain consecutive hyphens"
		case strings.ToLower(name) != name:
			msg = "name must be lowercase"
		}
		errs = append(errs, &ValidationError{
			Field:   "name",
			Message: msg,
			Value:   name,
		})
	}

	return errs
}

func (v *Validator) validateDescription(desc string) []error {
	var errs []error

	if strings.TrimSpace(desc) == "" {
		return append(errs, &ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if len(desc) > maxDescriptionLength {
		errs = append(errs, &ValidationError{
			Field:   "description",
			Message: "description exceeds maximum length of 1024 characters",
		})
	}

	return errs
}
