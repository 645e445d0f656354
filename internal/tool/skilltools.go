package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/llm"
	"github.com/skillet-ai/skillet/internal/skill"
)

// Limits for skill tool output.
const (
	searchResultLimit    = 3
	relevantSkillLimit   = 2
	relevantContentLimit = 10000
	keywordPreviewLimit  = 5
)

// SkillTools returns the tools that expose the skill library to agents.
func SkillTools(lib *skill.Library) []Tool {
	return []Tool{
		&listSkillsTool{lib: lib},
		&searchSkillsTool{lib: lib},
		&getSkillTool{lib: lib},
		&relevantKnowledgeTool{lib: lib},
	}
}

// listSkillsTool lists every loaded skill with its description.
type listSkillsTool struct {
	lib *skill.Library
}

func (t *listSkillsTool) Name() string { return "list_skills" }

func (t *listSkillsTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        t.Name(),
		Description: "List every available skill with its description and keywords. Use this to discover what knowledge is available.",
		Properties:  map[string]any{},
	}
}

func (t *listSkillsTool) Call(_ context.Context, _ json.RawMessage) (string, error) {
	skills := t.lib.List()
	if len(skills) == 0 {
		return "No skills are loaded.", nil
	}

	var b strings.Builder
	b.WriteString("## Available skills\n\n")
	for _, s := range skills {
		fmt.Fprintf(&b, "### %s\n", s.Name)
		fmt.Fprintf(&b, "Description: %s\n", s.Description)
		if len(s.Keywords) > 0 {
			kws := s.Keywords
			if len(kws) > keywordPreviewLimit {
				kws = kws[:keywordPreviewLimit]
			}
			fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(kws, ", "))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// searchSkillsTool finds skills matching a query.
type searchSkillsTool struct {
	lib *skill.Library
}

type searchSkillsInput struct {
	Query string `json:"query"`
}

func (t *searchSkillsTool) Name() string { return "search_skills" }

func (t *searchSkillsTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        t.Name(),
		Description: "Search skills by keyword or topic. Returns the best matching skills with their descriptions.",
		Properties: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Search keywords or a short problem description.",
			},
		},
		Required: []string{"query"},
	}
}

func (t *searchSkillsTool) Call(_ context.Context, input json.RawMessage) (string, error) {
	var in searchSkillsInput
	if err := unmarshalInput(input, &in); err != nil {
		return "", err
	}

	matches := t.lib.Search(in.Query, searchResultLimit)
	if len(matches) == 0 {
		return fmt.Sprintf("No skills match %q.", in.Query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Skills matching %q\n\n", in.Query)
	for _, s := range matches {
		fmt.Fprintf(&b, "### %s\n", s.Name)
		fmt.Fprintf(&b, "Description: %s\n", s.Description)
		if s.Path != "" {
			fmt.Fprintf(&b, "Path: %s\n", s.Path)
		}
		b.WriteString("\n")
	}
	b.WriteString("Use the get_skill tool to read a skill's full content.")
	return b.String(), nil
}

// getSkillTool returns a skill's full instructions.
type getSkillTool struct {
	lib *skill.Library
}

type getSkillInput struct {
	Name string `json:"name"`
}

func (t *getSkillTool) Name() string { return "get_skill" }

func (t *getSkillTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        t.Name(),
		Description: "Get the full content of a named skill. Use after list_skills or search_skills to read the knowledge in detail.",
		Properties: map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "The skill name.",
			},
		},
		Required: []string{"name"},
	}
}

func (t *getSkillTool) Call(_ context.Context, input json.RawMessage) (string, error) {
	var in getSkillInput
	if err := unmarshalInput(input, &in); err != nil {
		return "", err
	}

	s, err := t.lib.Get(in.Name)
	if err != nil {
		if errors.Is(err, errors.ErrSkillNotFound) {
			return fmt.Sprintf("No skill named %q is loaded. Use list_skills to see what is available.", in.Name), nil
		}
		return "", err
	}
	return s.Instructions, nil
}

// relevantKnowledgeTool pulls content of the best-matching skills for a
// question in one shot.
type relevantKnowledgeTool struct {
	lib *skill.Library
}

type relevantKnowledgeInput struct {
	Question string `json:"question"`
}

func (t *relevantKnowledgeTool) Name() string { return "relevant_knowledge" }

func (t *relevantKnowledgeTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        t.Name(),
		Description: "Automatically find and return the skill content most relevant to a question. Prefer this for direct knowledge questions.",
		Properties: map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The user's question.",
			},
		},
		Required: []string{"question"},
	}
}

func (t *relevantKnowledgeTool) Call(_ context.Context, input json.RawMessage) (string, error) {
	var in relevantKnowledgeInput
	if err := unmarshalInput(input, &in); err != nil {
		return "", err
	}

	matches := t.lib.Search(in.Question, relevantSkillLimit)
	if len(matches) == 0 {
		return "No skill covers this question; answer from general knowledge.", nil
	}

	var b strings.Builder
	b.WriteString("## Relevant knowledge\n\n")
	for _, s := range matches {
		content := s.Instructions
		if runes := []rune(content); len(runes) > relevantContentLimit {
			content = string(runes[:relevantContentLimit]) +
				"\n\n... (truncated; use get_skill for the full content)"
		}
		fmt.Fprintf(&b, "### From the %s skill:\n\n%s\n\n---\n\n", s.Name, content)
	}
	return b.String(), nil
}
