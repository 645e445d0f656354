package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var skillListJSON bool

func init() {
	skillListCmd.Flags().BoolVar(&skillListJSON, "json", false, "Output in JSON format")
	skillCmd.AddCommand(skillListCmd)
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded skills",
	Long: `List every skill the library would load, with its source.

Examples:
  # List all skills
  skillet skill list

  # Include an extra directory
  skillet skill list --skill-dir ./docs/skills

  # Output as JSON
  skillet skill list --json`,
	RunE: runSkillList,
}

// skillInfoJSON represents a skill in JSON output format.
type skillInfoJSON struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	Path        string   `json:"path,omitempty"`
	Source      string   `json:"source,omitempty"`
}

func runSkillList(cmd *cobra.Command, _ []string) error {
	return runSkillListWithWriter(cmd, os.Stdout)
}

// runSkillListWithWriter allows injecting a writer for testing.
func runSkillListWithWriter(cmd *cobra.Command, w io.Writer) error {
	lib, err := loadLibrary(cmd.Context(), loggerFrom(cmd.Context()))
	if err != nil {
		return err
	}
	skills := lib.List()

	if skillListJSON {
		infos := make([]skillInfoJSON, len(skills))
		for i, s := range skills {
			infos[i] = skillInfoJSON{
				Name:        s.Name,
				Description: s.Description,
				Keywords:    s.Keywords,
				Path:        s.Path,
				Source:      s.Metadata["source"],
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	if len(skills) == 0 {
		fmt.Fprintln(w, "No skills loaded")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sNAME%s\t%sDESCRIPTION%s\n", colorBold, colorReset, colorBold, colorReset)
	for _, s := range skills {
		fmt.Fprintf(tw, "%s%s%s\t%s\n", colorGreen, s.Name, colorReset, truncate(s.Description, 80))
	}
	return tw.Flush()
}

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
