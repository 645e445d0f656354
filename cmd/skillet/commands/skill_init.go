package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/paths"
	"github.com/skillet-ai/skillet/internal/skill"
	"github.com/skillet-ai/skillet/internal/skill/validator"
	"github.com/skillet-ai/skillet/pkg/fileutil"
	"github.com/skillet-ai/skillet/pkg/frontmatter"
)

var (
	skillInitDescription string
	skillInitDir         string
)

func init() {
	skillInitCmd.Flags().StringVar(&skillInitDescription, "description", "", "one-line description of the skill")
	skillInitCmd.Flags().StringVar(&skillInitDir, "dir", "", "directory to create the skill in (default: user skill directory)")
	_ = skillInitCmd.MarkFlagRequired("description")
	skillCmd.AddCommand(skillInitCmd)
}

var skillInitCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Create a new skill file",
	Long: `Create a new skill file with frontmatter scaffolding.

The skill is written to <dir>/<name>.skill.md. Names must be lowercase
alphanumeric segments separated by hyphens, e.g. 'react-hooks'.

Examples:
  skillet skill init react-hooks --description "Patterns for React hooks"
  skillet skill init team-style --dir ./.skillet/skills`,
	Args: cobra.ExactArgs(1),
	RunE: runSkillInit,
}

// skillTemplate is the starter body written into new skills.
const skillTemplate = `# %s

Describe the knowledge this skill captures. The first paragraph doubles
as the description shown to the model when no frontmatter description
is set.

## When to use

## Key points
`

func runSkillInit(_ *cobra.Command, args []string) error {
	return runSkillInitWithWriter(args[0], os.Stdout)
}

// runSkillInitWithWriter allows injecting a writer for testing.
func runSkillInitWithWriter(name string, w io.Writer) error {
	v := validator.New()
	if errs := v.Validate(&skill.Skill{Name: name, Description: skillInitDescription}); len(errs) > 0 {
		return errors.NewUserError(errs[0], "Skill names are lowercase alphanumeric segments separated by hyphens")
	}

	dir := skillInitDir
	if dir == "" {
		dir = paths.UserSkillDir()
	}
	if err := paths.EnsureDir(dir, paths.DefaultDirPerm); err != nil {
		return err
	}

	path := filepath.Join(dir, name+".skill.md")
	if _, err := os.Stat(path); err == nil {
		return errors.NewUserError(errors.Newf("skill %q already exists at %s", name, path),
			"Pick a different name or edit the existing skill")
	}

	matter := skill.Matter{
		Name:        name,
		Description: skillInitDescription,
	}
	data, err := frontmatter.Format(matter, fmt.Sprintf(skillTemplate, name))
	if err != nil {
		return errors.Wrap(err, "rendering skill template")
	}

	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(w, "Created %s\n", path)
	return nil
}
