package agent

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/skillet-ai/skillet/internal/llm"
	"github.com/skillet-ai/skillet/internal/logging"
	"github.com/skillet-ai/skillet/internal/session"
	"github.com/skillet-ai/skillet/internal/skill"
)

func TestNewSkillExpert(t *testing.T) {
	s := &skill.Skill{
		Name:         "react-hooks",
		Description:  "Using React hooks.",
		Instructions: "Call hooks at the top level only.",
	}

	ag, err := NewSkillExpert(s)
	if err != nil {
		t.Fatalf("NewSkillExpert: %v", err)
	}

	if ag.Name != "react-hooks" {
		t.Errorf("Name = %q", ag.Name)
	}
	if !strings.Contains(ag.Instruction, "# Skill: react-hooks") {
		t.Errorf("instruction missing skill heading:\n%s", ag.Instruction)
	}
	if !strings.Contains(ag.Instruction, "Call hooks at the top level only.") {
		t.Errorf("instruction missing skill body:\n%s", ag.Instruction)
	}
	if !strings.Contains(ag.Description, "Using React hooks.") {
		t.Errorf("Description = %q", ag.Description)
	}
}

func TestExpertCacheReuse(t *testing.T) {
	s := &skill.Skill{Name: "go-errors", Description: "Error handling.", Instructions: "Wrap errors."}
	cache := NewExpertCache()

	first, err := cache.Expert(s)
	if err != nil {
		t.Fatal(err)
	}
	second, err := cache.Expert(s)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("cache built the expert twice, want the same agent")
	}
}

func TestExpertToolDelegation(t *testing.T) {
	s := &skill.Skill{
		Name:         "go-errors",
		Description:  "Error handling.",
		Instructions: "Wrap errors with context.",
	}
	model := &fakeModel{script: []*llm.Response{
		{Text: "Wrap with errors.Wrap.", StopReason: "end_turn"},
	}}
	store := session.NewMemoryStore()
	runner := NewRunner(model, store, logging.ForTest(t))

	et := NewExpertCache().Tool(s, runner, store)
	if et.Name() != "ask_go-errors" {
		t.Errorf("Name = %q", et.Name())
	}

	out, err := et.Call(context.Background(), json.RawMessage(`{"query":"how do I wrap errors?"}`))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out != "Wrap with errors.Wrap." {
		t.Errorf("out = %q", out)
	}

	// The expert's system prompt carries the skill instructions.
	if !strings.Contains(model.requests[0].System, "Wrap errors with context.") {
		t.Errorf("expert system prompt:\n%s", model.requests[0].System)
	}
}
