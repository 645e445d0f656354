// Package commands implements the CLI commands for skillet.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/cmd"
	"github.com/skillet-ai/skillet/internal/config"
	"github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/logging"
)

// version mirrors the build-time version for use where the cmd
// package name is shadowed by a *cobra.Command parameter.
var version = cmd.Version

// skillDirs holds the value of the --skill-dir flag.
var skillDirs []string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// cfg is the loaded configuration, available after initConfig runs.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringSliceVarP(&skillDirs, "skill-dir", "d", nil,
		"additional skill director(ies) to load (repeatable)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to config file (default: ./config.yaml, then XDG config dir)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("skillet version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configPath)
}

var rootCmd = &cobra.Command{
	Use:   "skillet",
	Short: "Skill-augmented AI agent for the terminal",
	Long: `skillet answers questions with the help of a curated skill library.

A skill is a markdown document of vetted knowledge on a topic, stored as
<name>.skill.md or <name>/SKILL.md. skillet loads skills from your
project, your user config, and any extra directories, then lets an
Anthropic model consult them with tools while answering.

Ask one-shot questions with 'skillet ask', hold a conversation with
'skillet chat', or expose the library to other MCP clients with
'skillet serve'.`,
	Example: `  # Ask a one-shot question
  skillet ask "how should I structure React state?"

  # Start an interactive conversation
  skillet chat

  # Browse the loaded skills
  skillet skill list

  # Check environment health
  skillet doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("SKILLET_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces config load errors before any command runs.
func checkConfig(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// Execute runs the root command. The context should be cancelled on
// SIGINT/SIGTERM so long-running commands (ask, chat, serve) shut down
// cleanly.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
