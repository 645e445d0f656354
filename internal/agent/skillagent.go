package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skillet-ai/skillet/internal/llm"
	"github.com/skillet-ai/skillet/internal/session"
	"github.com/skillet-ai/skillet/internal/skill"
	"github.com/skillet-ai/skillet/internal/tool"
)

// skillInstruction is the system prompt template for the single skill
// agent. The skill inventory is appended so the model knows what it can
// look up without a list_skills round trip.
const skillInstruction = `You are a knowledgeable assistant with access to a curated library of skills.

A skill is a document of vetted knowledge on a specific topic. Before
answering a question that a skill might cover, consult the library:
prefer relevant_knowledge for direct questions, or search_skills and
get_skill to browse. Ground your answer in skill content when it exists
and say so. If no skill applies, answer from general knowledge.

You can also inspect the user's files and run read-only commands when
the question concerns their project.`

// NewSkillAgent builds the default single agent: skill tools plus file
// and command tools, with the loaded skill inventory in the instruction.
func NewSkillAgent(lib *skill.Library) (*Agent, error) {
	tools := tool.SkillTools(lib)
	tools = append(tools, tool.FileTools()...)
	tools = append(tools, tool.ExecTools()...)

	reg, err := tool.NewRegistry(tools...)
	if err != nil {
		return nil, err
	}

	return New("skillet", "Answers questions using the skill library.", withInventory(skillInstruction, lib), reg), nil
}

// withInventory appends the skill name/description inventory to an
// instruction.
func withInventory(instruction string, lib *skill.Library) string {
	skills := lib.List()
	if len(skills) == 0 {
		return instruction + "\n\nThe skill library is currently empty."
	}

	var b strings.Builder
	b.WriteString(instruction)
	b.WriteString("\n\nLoaded skills:\n")
	for _, s := range skills {
		fmt.Fprintf(&b, "- %s: %s\n", s.Name, s.Description)
	}
	return b.String()
}

// agentTool wraps an agent so a parent agent can delegate to it as a
// tool. Each call runs on a fresh session so delegated queries do not
// leak history between calls or into the parent conversation.
type agentTool struct {
	agent  *Agent
	runner *Runner
	store  session.Store
}

// AsTool wraps ag as a tool executed by runner. The store must be the
// runner's session store.
func AsTool(ag *Agent, runner *Runner, store session.Store) tool.Tool {
	return &agentTool{agent: ag, runner: runner, store: store}
}

type agentToolInput struct {
	Query string `json:"query"`
}

func (t *agentTool) Name() string { return "ask_" + t.agent.Name }

func (t *agentTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        t.Name(),
		Description: t.agent.Description,
		Properties: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The question or task to delegate.",
			},
		},
		Required: []string{"query"},
	}
}

func (t *agentTool) Call(ctx context.Context, input json.RawMessage) (string, error) {
	var in agentToolInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}

	sess, err := t.store.Create("skillet", "delegate")
	if err != nil {
		return "", err
	}

	res, err := t.runner.Run(ctx, t.agent, sess.ID, in.Query, nil)
	if err != nil {
		return fmt.Sprintf("The %s agent failed: %v", t.agent.Name, err), nil
	}
	return res.Text, nil
}
