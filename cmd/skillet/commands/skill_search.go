package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/skill"
)

var (
	skillSearchLimit       int
	skillSearchInteractive bool
	skillSearchJSON        bool
)

func init() {
	skillSearchCmd.Flags().IntVar(&skillSearchLimit, "limit", 10, "maximum number of results")
	skillSearchCmd.Flags().BoolVarP(&skillSearchInteractive, "interactive", "i", false, "pick a skill with a fuzzy finder")
	skillSearchCmd.Flags().BoolVar(&skillSearchJSON, "json", false, "output results as JSON")
	skillCmd.AddCommand(skillSearchCmd)
}

// searchResultJSON is one --json result entry.
type searchResultJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Score       int    `json:"score"`
}

var skillSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the skill library",
	Long: `Search skills by name, keyword, or description.

With a query, prints the matching skills ranked by relevance. With
--interactive (or no query), opens a fuzzy finder over the whole
library.

Examples:
  skillet skill search react
  skillet skill search react --json
  skillet skill search -i`,
	Args: cobra.ArbitraryArgs,
	RunE: runSkillSearch,
}

func runSkillSearch(cmd *cobra.Command, args []string) error {
	return runSkillSearchWithWriter(cmd, args, os.Stdout)
}

// runSkillSearchWithWriter allows injecting a writer for testing.
func runSkillSearchWithWriter(cmd *cobra.Command, args []string, w io.Writer) error {
	lib, err := loadLibrary(cmd.Context(), loggerFrom(cmd.Context()))
	if err != nil {
		return err
	}

	if skillSearchInteractive || len(args) == 0 {
		return runInteractiveSearch(w, lib.List())
	}

	query := args[0]
	for _, a := range args[1:] {
		query += " " + a
	}

	matches := lib.SearchScored(query, skillSearchLimit)

	if skillSearchJSON {
		results := make([]searchResultJSON, len(matches))
		for i, m := range matches {
			results[i] = searchResultJSON{
				Name:        m.Skill.Name,
				Description: m.Skill.Description,
				Score:       m.Score,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(matches) == 0 {
		fmt.Fprintf(w, "No skills match %q\n", query)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sNAME%s\t%sDESCRIPTION%s\n", colorBold, colorReset, colorBold, colorReset)
	for _, m := range matches {
		fmt.Fprintf(tw, "%s%s%s\t%s\n", colorGreen, m.Skill.Name, colorReset, truncate(m.Skill.Description, 80))
	}
	return tw.Flush()
}

// runInteractiveSearch opens a fuzzy finder over the loaded skills.
func runInteractiveSearch(w io.Writer, skills []*skill.Skill) error {
	if len(skills) == 0 {
		fmt.Fprintln(w, "No skills loaded")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		skills,
		func(i int) string {
			return skills[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i == -1 {
				return ""
			}
			s := skills[i]
			return fmt.Sprintf("Name: %s\n\nDescription:\n%s\n\n%s", s.Name, s.Description, s.Instructions)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive search failed")
	}

	fmt.Fprintln(w, skills[idx].Instructions)
	return nil
}
