package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/internal/agent"
)

// askResult is the --json output shape.
type askResult struct {
	Answer       string `json:"answer"`
	Steps        int    `json:"steps"`
	InputTokens  int64  `json:"input_tokens"`
	OutputTokens int64  `json:"output_tokens"`
}

// askShowTools controls printing of tool activity during the query.
var askShowTools bool

// askJSON switches the output to a machine-readable result.
var askJSON bool

func init() {
	askCmd.Flags().BoolVar(&askShowTools, "show-tools", false, "print tool calls as they happen")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the answer and usage as JSON")
	addAgentFlags(askCmd)
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a one-shot question",
	Long: `Ask a single question and print the answer.

The agent consults the skill library (and, when relevant, your files)
before answering. Requires the ANTHROPIC_API_KEY environment variable.

Examples:
  # Ask about a topic a skill covers
  skillet ask "how do React hooks work?"

  # Watch the agent's tool use
  skillet ask --show-tools "what does main.go do?"

  # Delegate to the specialist team and keep the output scriptable
  skillet ask --agent team --json "summarize my skills"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	return runAskWithWriter(cmd, args, cmd.OutOrStdout())
}

// runAskWithWriter allows injecting a writer for testing.
func runAskWithWriter(cmd *cobra.Command, args []string, w io.Writer) error {
	ctx := cmd.Context()
	logger := loggerFrom(ctx)
	query := strings.Join(args, " ")

	lib, err := loadLibrary(ctx, logger)
	if err != nil {
		return err
	}

	runner, store, err := buildRunner(logger)
	if err != nil {
		return err
	}

	ag, err := buildAgent(lib, runner, store)
	if err != nil {
		return err
	}

	sess, err := store.Create("skillet", "cli")
	if err != nil {
		return err
	}

	var onEvent agent.EventFunc
	if askShowTools {
		dim := color.New(color.Faint)
		onEvent = func(e agent.Event) {
			switch e.Kind {
			case agent.EventToolCall:
				dim.Fprintf(cmd.ErrOrStderr(), "[%s] %s %s\n", e.Agent, e.Tool, e.Input)
			case agent.EventToolResult:
				dim.Fprintf(cmd.ErrOrStderr(), "[%s] %s done\n", e.Agent, e.Tool)
			}
		}
	}

	res, err := runner.Run(ctx, ag, sess.ID, query, onEvent)
	if err != nil {
		return err
	}

	if askJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(askResult{
			Answer:       res.Text,
			Steps:        res.Steps,
			InputTokens:  res.Usage.InputTokens,
			OutputTokens: res.Usage.OutputTokens,
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w, res.Text)
	}
	logger.Debug("query complete",
		"steps", res.Steps,
		"input_tokens", res.Usage.InputTokens,
		"output_tokens", res.Usage.OutputTokens,
	)
	return nil
}
