package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var skillShowRaw bool

func init() {
	skillShowCmd.Flags().BoolVar(&skillShowRaw, "raw", false, "print only the skill content")
	skillCmd.AddCommand(skillShowCmd)
}

var skillShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a skill's content",
	Long: `Show a skill's metadata and full content.

Examples:
  skillet skill show react-hooks
  skillet skill show react-hooks --raw`,
	Args: cobra.ExactArgs(1),
	RunE: runSkillShow,
}

func runSkillShow(cmd *cobra.Command, args []string) error {
	return runSkillShowWithWriter(cmd, args[0], os.Stdout)
}

// runSkillShowWithWriter allows injecting a writer for testing.
func runSkillShowWithWriter(cmd *cobra.Command, name string, w io.Writer) error {
	lib, err := loadLibrary(cmd.Context(), loggerFrom(cmd.Context()))
	if err != nil {
		return err
	}

	s, err := lib.Get(name)
	if err != nil {
		return err
	}

	if skillShowRaw {
		fmt.Fprintln(w, s.Instructions)
		return nil
	}

	fmt.Fprintf(w, "%s%s%s\n", colorBold, s.Name, colorReset)
	fmt.Fprintf(w, "%s\n", s.Description)
	if len(s.Keywords) > 0 {
		fmt.Fprintf(w, "%sKeywords:%s %s\n", colorGray, colorReset, strings.Join(s.Keywords, ", "))
	}
	if s.Path != "" {
		fmt.Fprintf(w, "%sPath:%s %s\n", colorGray, colorReset, s.Path)
	}
	fmt.Fprintf(w, "\n%s\n", s.Instructions)
	return nil
}
