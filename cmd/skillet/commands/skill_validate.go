package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/skill"
	"github.com/skillet-ai/skillet/internal/skill/validator"
	"github.com/skillet-ai/skillet/pkg/frontmatter"
)

var (
	validateJSON   bool
	validateStrict bool
)

func init() {
	skillValidateCmd.Flags().BoolVar(&validateJSON, "json", false,
		"output results as JSON")
	skillValidateCmd.Flags().BoolVar(&validateStrict, "strict", false,
		"require explicit frontmatter metadata and a non-empty body")
	skillCmd.AddCommand(skillValidateCmd)
}

var skillValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a skill file",
	Long: `Validate a skill file without loading the whole library.

Parses and validates the skill at the given path. The path may be a
<name>.skill.md file, a SKILL.md file, or a directory containing one.

With --strict, metadata derived from the file itself is not accepted:
name, description, and at least one keyword must be declared in the
frontmatter, and the body must not be empty.

Use --json for machine-readable output.

Exit codes:
  0 - Skill is valid
  1 - Skill validation failed`,
	Args: cobra.ExactArgs(1),
	RunE: runSkillValidate,
}

// validateResult represents the JSON output structure.
type validateResult struct {
	Valid      bool       `json:"valid"`
	Skill      *skillMeta `json:"skill,omitempty"`
	Errors     []string   `json:"errors,omitempty"`
	ParseError string     `json:"parse_error,omitempty"`
	Path       string     `json:"path"`
}

// skillMeta contains skill metadata for display.
type skillMeta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func runSkillValidate(_ *cobra.Command, args []string) error {
	return runSkillValidateWithWriter(args[0], os.Stdout)
}

// runSkillValidateWithWriter allows injecting a writer for testing.
func runSkillValidateWithWriter(path string, w io.Writer) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	// A directory means its SKILL.md.
	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		absPath = filepath.Join(absPath, "SKILL.md")
	}

	s, parseErr := skill.ParseFile(absPath)
	if parseErr != nil {
		return outputParseError(w, absPath, parseErr)
	}

	v := validator.New()
	if validationErrs := v.ValidateWithPath(s, absPath); len(validationErrs) > 0 {
		return outputValidationErrors(w, absPath, validationErrs)
	}

	if validateStrict {
		if findings := strictErrors(absPath, s); len(findings) > 0 {
			return outputValidationErrors(w, absPath, findings)
		}
	}

	return outputSuccess(w, absPath, s)
}

// strictErrors enforces the --strict extras: declared frontmatter
// metadata rather than values derived from the file, and a body.
func strictErrors(path string, s *skill.Skill) []error {
	f, err := os.Open(path)
	if err != nil {
		return []error{errors.Wrap(err, "strict check")}
	}
	defer f.Close()

	var m skill.Matter
	if _, err := frontmatter.MustParse(f, &m); err != nil {
		return []error{errors.New("frontmatter: required in strict mode")}
	}

	var out []error
	if m.Name == "" {
		out = append(out, errors.New("name: must be declared in frontmatter, not derived from the filename"))
	}
	if m.Description == "" {
		out = append(out, errors.New("description: must be declared in frontmatter, not derived from the body"))
	}
	if len(m.Keywords) == 0 {
		out = append(out, errors.New("keywords: declare at least one in frontmatter"))
	}
	if s.Instructions == "" {
		out = append(out, errors.New("instructions: body is empty"))
	}
	return out
}

func outputParseError(w io.Writer, path string, err error) error {
	if validateJSON {
		return outputValidateJSON(w, validateResult{
			Valid:      false,
			Path:       path,
			ParseError: formatParseError(err),
		})
	}

	fmt.Fprintln(w, "✗ Skill validation failed")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Parse error:\n")
	fmt.Fprintf(w, "    - %s\n", formatParseError(err))
	return errValidationFailed
}

func outputValidationErrors(w io.Writer, path string, errs []error) error {
	if validateJSON {
		errStrings := make([]string, len(errs))
		for i, e := range errs {
			errStrings[i] = formatValidationError(e)
		}
		return outputValidateJSON(w, validateResult{
			Valid:  false,
			Path:   path,
			Errors: errStrings,
		})
	}

	fmt.Fprintln(w, "✗ Skill validation failed")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Errors:")
	for _, e := range errs {
		fmt.Fprintf(w, "    - %s\n", formatValidationError(e))
	}
	return errValidationFailed
}

func outputSuccess(w io.Writer, path string, s *skill.Skill) error {
	if validateJSON {
		return outputValidateJSON(w, validateResult{
			Valid: true,
			Path:  path,
			Skill: &skillMeta{
				Name:        s.Name,
				Description: s.Description,
			},
		})
	}

	fmt.Fprintf(w, "✓ Skill '%s' is valid\n", s.Name)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Name:        %s\n", s.Name)
	fmt.Fprintf(w, "  Description: %s\n", s.Description)
	return nil
}

func outputValidateJSON(w io.Writer, result validateResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	if !result.Valid {
		return errValidationFailed
	}
	return nil
}

// formatParseError extracts a user-friendly message from parse errors.
func formatParseError(err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return "skill file not found"
	}
	return err.Error()
}

// formatValidationError extracts a user-friendly message from validation errors.
func formatValidationError(err error) string {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		return fmt.Sprintf("%s: %s", valErr.Field, valErr.Message)
	}
	return err.Error()
}

// errValidationFailed is a sentinel error that signals non-zero exit.
var errValidationFailed = errors.New("validation failed")
