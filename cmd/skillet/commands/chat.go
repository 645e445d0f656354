package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/internal/agent"
)

func init() {
	addAgentFlags(chatCmd)
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Start an interactive conversation with the agent.

The conversation keeps its history for the whole session, so follow-up
questions work. Type 'exit' or 'quit' (or press Ctrl-D) to leave.

Examples:
  skillet chat
  skillet chat --skill-dir ./docs/skills
  skillet chat --agent team`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, _ []string) error {
	return runChatWithIO(cmd, cmd.InOrStdin(), cmd.OutOrStdout())
}

// runChatWithIO allows injecting reader and writer for testing.
func runChatWithIO(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	ctx := cmd.Context()
	logger := loggerFrom(ctx)

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

	bold := color.New(color.Bold)
	author := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	fmt.Fprintf(out, "skillet %s (%d skills loaded). Type 'exit' to quit.\n\n", version, lib.Len())

	// Assistant text streams through events with the producing agent's
	// name as the author, so team mode shows who answered what.
	onEvent := func(ev agent.Event) {
		switch ev.Kind {
		case agent.EventToolCall:
			dim.Fprintf(out, "  [%s] %s %s\n", ev.Agent, ev.Tool, truncate(ev.Input, 80))
		case agent.EventText:
			if strings.TrimSpace(ev.Text) == "" {
				return
			}
			author.Fprintf(out, "%s> ", ev.Agent)
			fmt.Fprintln(out, ev.Text)
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		bold.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		if _, err := runner.Run(ctx, ag, sess.ID, query, onEvent); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n\n", err)
			continue
		}
		fmt.Fprintln(out)
	}

	return scanner.Err()
}
