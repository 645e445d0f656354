package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/internal/doctor"
	"github.com/skillet-ai/skillet/internal/errors"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose environment issues",
	Long: `Run diagnostic checks on the skillet environment.

Checks the API key, the config file, and the skill directories, and
validates every skill found on disk.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}

	if count > 1 {
		return errors.New("flags --json, --quiet, and --verbose are mutually exclusive")
	}

	return nil
}

func runDoctor(_ *cobra.Command, _ []string) error {
	return runDoctorWithWriter(os.Stdout)
}

// runDoctorWithWriter allows injecting a writer for testing.
func runDoctorWithWriter(w io.Writer) error {
	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewAPIKeyCheck())
	runner.AddCheck(doctor.NewConfigCheck(configPath))
	runner.AddCheck(doctor.NewSkillRootsCheck(skillRoots()))
	runner.AddCheck(doctor.NewSkillValidityCheck(skillRoots()))

	report := runner.Run()

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(errors.New("doctor found errors"), errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errors.New("doctor found warnings"), errors.ExitUser)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	return outputDoctorText(w, report)
}

func outputDoctorText(w io.Writer, report *doctor.Report) error {
	// Normal mode shows only errors and warnings; verbose shows all.
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		icon := statusIcon(result.Status)
		fmt.Fprintf(w, "%s [%s] %s: %s\n", icon, result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
