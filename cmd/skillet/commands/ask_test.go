package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/skillet-ai/skillet/internal/agent"
	"github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/logging"
	"github.com/skillet-ai/skillet/internal/session"
)

func TestAskCommandMissingAPIKey(t *testing.T) {
	setupSkillTree(t)
	t.Setenv("ANTHROPIC_API_KEY", "")

	var buf bytes.Buffer
	err := runAskWithWriter(testCommand(t), []string{"hello"}, &buf)
	if !errors.Is(err, errors.ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}

	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("error is not an ExitError")
	}
	if !strings.Contains(exitErr.Suggestion, "ANTHROPIC_API_KEY") {
		t.Errorf("suggestion = %q", exitErr.Suggestion)
	}
}

func TestChatCommandMissingAPIKey(t *testing.T) {
	setupSkillTree(t)
	t.Setenv("ANTHROPIC_API_KEY", "")

	cmd := testCommand(t)
	var out bytes.Buffer
	err := runChatWithIO(cmd, strings.NewReader("hi\n"), &out)
	if !errors.Is(err, errors.ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestAgentFlagsRegistered(t *testing.T) {
	for _, name := range []string{"agent", "model", "max-steps", "json", "show-tools"} {
		if askCmd.Flags().Lookup(name) == nil {
			t.Errorf("ask is missing the --%s flag", name)
		}
	}
	for _, name := range []string{"agent", "model", "max-steps"} {
		if chatCmd.Flags().Lookup(name) == nil {
			t.Errorf("chat is missing the --%s flag", name)
		}
	}
}

func TestBuildAgentModeFlag(t *testing.T) {
	setupSkillTree(t)
	prev := agentMode
	t.Cleanup(func() { agentMode = prev })

	lib, err := loadLibrary(context.Background(), logging.ForTest(t))
	if err != nil {
		t.Fatal(err)
	}
	store := session.NewMemoryStore()
	runner := agent.NewRunner(nil, store, logging.ForTest(t))

	agentMode = "team"
	ag, err := buildAgent(lib, runner, store)
	if err != nil {
		t.Fatalf("buildAgent: %v", err)
	}
	if _, ok := ag.Tools.Get("ask_knowledge"); !ok {
		t.Error("--agent team did not build the coordinator")
	}

	agentMode = "swarm"
	if _, err := buildAgent(lib, runner, store); err == nil {
		t.Error("expected an error for an unknown agent mode")
	}
}

func TestBuildRunnerFlagOverrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test-key-for-overrides")
	prevModel, prevSteps, prevCfg := modelFlag, maxStepsFlag, cfg
	t.Cleanup(func() { modelFlag, maxStepsFlag, cfg = prevModel, prevSteps, prevCfg })
	cfg = nil

	modelFlag = "claude-test-model"
	maxStepsFlag = 3

	runner, _, err := buildRunner(logging.ForTest(t))
	if err != nil {
		t.Fatalf("buildRunner: %v", err)
	}
	if runner.MaxSteps != 3 {
		t.Errorf("MaxSteps = %d, want 3", runner.MaxSteps)
	}
}

func TestSetupLoggingConflictingFlags(t *testing.T) {
	prevQuiet, prevVerbosity := quiet, verbosity
	t.Cleanup(func() { quiet, verbosity = prevQuiet, prevVerbosity })

	quiet = true
	verbosity = 2

	err := setupLogging(testCommand(t))
	if err == nil {
		t.Fatal("expected error for --quiet with --verbose")
	}
}
