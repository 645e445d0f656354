package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/skillet-ai/skillet/internal/llm"
	"github.com/skillet-ai/skillet/internal/session"
	"github.com/skillet-ai/skillet/internal/skill"
	"github.com/skillet-ai/skillet/internal/tool"
)

// expertInstruction frames one skill as the agent's whole expertise.
const expertInstruction = `You are an expert on a single topic. Answer questions using the skill
instructions below as your primary source. Stay within this expertise
and say so when a question falls outside it.

# Skill: %s

%s`

// NewSkillExpert builds an agent specialized in a single skill. The
// skill's full instructions are embedded in the agent instruction, so
// the expert needs no lookup tools.
func NewSkillExpert(s *skill.Skill) (*Agent, error) {
	reg, err := tool.NewRegistry()
	if err != nil {
		return nil, err
	}
	instruction := fmt.Sprintf(expertInstruction, s.Name, s.Instructions)
	description := fmt.Sprintf("Expert on %s: %s", s.Name, s.Description)
	return New(s.Name, description, instruction, reg), nil
}

// ExpertCache builds expert agents lazily and caches them by skill name.
type ExpertCache struct {
	mu      sync.Mutex
	experts map[string]*Agent
}

func NewExpertCache() *ExpertCache {
	return &ExpertCache{experts: make(map[string]*Agent)}
}

// Expert returns the cached expert for s, building it on first use.
func (c *ExpertCache) Expert(s *skill.Skill) (*Agent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ag, ok := c.experts[s.Name]; ok {
		return ag, nil
	}
	ag, err := NewSkillExpert(s)
	if err != nil {
		return nil, err
	}
	c.experts[s.Name] = ag
	return ag, nil
}

// Tool wraps the expert for s as a delegation tool. The expert agent
// is not built until the first call.
func (c *ExpertCache) Tool(s *skill.Skill, runner *Runner, store session.Store) tool.Tool {
	return &expertTool{skill: s, cache: c, runner: runner, store: store}
}

type expertTool struct {
	skill  *skill.Skill
	cache  *ExpertCache
	runner *Runner
	store  session.Store
}

func (t *expertTool) Name() string { return "ask_" + t.skill.Name }

func (t *expertTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        t.Name(),
		Description: fmt.Sprintf("Consult the %s expert. %s", t.skill.Name, t.skill.Description),
		Properties: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The question to put to the expert.",
			},
		},
		Required: []string{"query"},
	}
}

func (t *expertTool) Call(ctx context.Context, input json.RawMessage) (string, error) {
	ag, err := t.cache.Expert(t.skill)
	if err != nil {
		return "", err
	}
	return AsTool(ag, t.runner, t.store).Call(ctx, input)
}
