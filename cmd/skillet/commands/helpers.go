package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/internal/agent"
	"github.com/skillet-ai/skillet/internal/config"
	"github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/llm"
	"github.com/skillet-ai/skillet/internal/logging"
	"github.com/skillet-ai/skillet/internal/paths"
	"github.com/skillet-ai/skillet/internal/session"
	"github.com/skillet-ai/skillet/internal/skill"
	"github.com/skillet-ai/skillet/internal/skill/builtin"
)

// Agent flags shared by ask and chat. Empty or zero means the config
// (or its default) decides.
var (
	agentMode    string
	modelFlag    string
	maxStepsFlag int
)

// addAgentFlags registers the shared agent flags on a command.
func addAgentFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&agentMode, "agent", "", "agent mode: single or team")
	cmd.Flags().StringVar(&modelFlag, "model", "", "model name to use")
	cmd.Flags().IntVar(&maxStepsFlag, "max-steps", 0, "maximum model/tool round trips per query")
}

// skillRoots resolves the skill directories to scan: defaults, then
// config, then --skill-dir flags. Later roots lose duplicate names.
func skillRoots() []string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	var roots []string
	roots = append(roots, skillDirs...)
	if cfg != nil {
		roots = append(roots, cfg.Skills.Dirs...)
	}
	roots = append(roots, paths.DefaultSkillRoots(cwd)...)
	return roots
}

// loadLibrary scans every configured skill root plus the embedded
// builtins. Disk skills shadow embedded ones.
func loadLibrary(ctx context.Context, logger *slog.Logger) (*skill.Library, error) {
	lib := skill.NewLibrary(logger)
	if err := lib.LoadRoots(ctx, skillRoots()); err != nil {
		return nil, err
	}
	if cfg == nil || cfg.Skills.IncludeBuiltin {
		if err := lib.LoadFS(builtin.FS, builtin.Source); err != nil {
			return nil, err
		}
	}
	logger.Debug("skill library loaded", "skills", lib.Len())
	return lib, nil
}

// buildRunner assembles the model, session store, and runner from config.
func buildRunner(logger *slog.Logger) (*agent.Runner, session.Store, error) {
	modelName := config.DefaultModel
	maxSteps := config.DefaultMaxSteps
	maxTokens := config.DefaultMaxTokens
	if cfg != nil {
		if cfg.Model != "" {
			modelName = cfg.Model
		}
		if cfg.Agent.MaxSteps > 0 {
			maxSteps = cfg.Agent.MaxSteps
		}
		if cfg.Agent.MaxTokens > 0 {
			maxTokens = cfg.Agent.MaxTokens
		}
	}
	// Flags win over config.
	if modelFlag != "" {
		modelName = modelFlag
	}
	if maxStepsFlag > 0 {
		maxSteps = maxStepsFlag
	}

	model, err := llm.NewAnthropic(modelName, logger)
	if err != nil {
		if errors.Is(err, errors.ErrMissingAPIKey) {
			return nil, nil, errors.NewUserError(err, "Set the ANTHROPIC_API_KEY environment variable")
		}
		return nil, nil, err
	}

	store := session.NewMemoryStore()
	runner := agent.NewRunner(model, store, logger)
	runner.MaxSteps = maxSteps
	runner.MaxTokens = maxTokens
	return runner, store, nil
}

// buildAgent creates the root agent for the requested mode. The --agent
// flag wins over config.
func buildAgent(lib *skill.Library, runner *agent.Runner, store session.Store) (*agent.Agent, error) {
	mode := ""
	if cfg != nil {
		mode = cfg.Agent.Mode
	}
	if agentMode != "" {
		mode = agentMode
	}

	switch mode {
	case "", "single":
		return agent.NewSkillAgent(lib)
	case "team":
		return agent.NewCoordinator(lib, runner, store)
	default:
		return nil, errors.NewUserError(
			errors.Newf("unknown agent mode %q", mode),
			"Use --agent single or --agent team")
	}
}

// loggerFrom pulls the command logger out of the context set by
// setupLogging.
func loggerFrom(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
