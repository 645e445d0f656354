package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/internal/editor"
	"github.com/skillet-ai/skillet/internal/errors"
)

func init() {
	skillCmd.AddCommand(skillEditCmd)
}

var skillEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a skill in your editor",
	Long: `Open a loaded skill's file in your preferred editor.

Uses $EDITOR, falling back to $VISUAL, then nano, then vi. Embedded
builtin skills cannot be edited.

Examples:
  skillet skill edit react-hooks`,
	Args: cobra.ExactArgs(1),
	RunE: runSkillEdit,
}

func runSkillEdit(cmd *cobra.Command, args []string) error {
	lib, err := loadLibrary(cmd.Context(), loggerFrom(cmd.Context()))
	if err != nil {
		return err
	}

	s, err := lib.Get(args[0])
	if err != nil {
		return err
	}
	if s.Path == "" {
		return errors.NewUserError(errors.Newf("skill %q is embedded in the binary", s.Name),
			"Copy it to your skill directory first: skillet skill show "+s.Name+" --raw")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", s.Path)
	return editor.Open(s.Path)
}
