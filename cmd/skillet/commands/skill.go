package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(skillCmd)
}

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Inspect the skill library",
	Long:  `Inspect the loaded skill library: list, show, search, and validate skills defined as Markdown with YAML frontmatter.`,
}
