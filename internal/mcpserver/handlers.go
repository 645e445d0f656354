package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/skill"
)

// searchLimit caps how many matches search_skills returns.
const searchLimit = 5

// skillService holds the library the MCP tool handlers read from.
type skillService struct {
	lib    *skill.Library
	logger *slog.Logger
}

// SkillSummary is the wire shape for one skill in list and search output.
type SkillSummary struct {
	Name        string   `json:"name" jsonschema:"the skill name"`
	Description string   `json:"description" jsonschema:"one-line summary of what the skill covers"`
	Keywords    []string `json:"keywords,omitempty" jsonschema:"topic keywords extracted from the skill"`
}

// ListSkillsInput has no parameters.
type ListSkillsInput struct{}

// ListSkillsOutput is the list_skills result.
type ListSkillsOutput struct {
	Skills []SkillSummary `json:"skills" jsonschema:"every loaded skill"`
	Count  int            `json:"count" jsonschema:"number of loaded skills"`
}

func (s *skillService) ListSkills(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListSkillsInput,
) (*mcp.CallToolResult, ListSkillsOutput, error) {
	skills := s.lib.List()
	out := ListSkillsOutput{Count: len(skills), Skills: make([]SkillSummary, 0, len(skills))}
	for _, sk := range skills {
		out.Skills = append(out.Skills, summarize(sk))
	}
	return nil, out, nil
}

// SearchSkillsInput is the search_skills request.
type SearchSkillsInput struct {
	Query string `json:"query" jsonschema:"search keywords or a short problem description"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 5)"`
}

// SearchSkillsOutput is the search_skills result.
type SearchSkillsOutput struct {
	Skills []SkillSummary `json:"skills" jsonschema:"matching skills, best first"`
}

func (s *skillService) SearchSkills(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchSkillsInput,
) (*mcp.CallToolResult, SearchSkillsOutput, error) {
	if input.Query == "" {
		return nil, SearchSkillsOutput{}, errors.New("query is required")
	}
	limit := input.Limit
	if limit <= 0 {
		limit = searchLimit
	}

	matches := s.lib.Search(input.Query, limit)
	out := SearchSkillsOutput{Skills: make([]SkillSummary, 0, len(matches))}
	for _, sk := range matches {
		out.Skills = append(out.Skills, summarize(sk))
	}
	s.logger.Debug("mcp search", "query", input.Query, "matches", len(matches))
	return nil, out, nil
}

// GetSkillInput is the get_skill request.
type GetSkillInput struct {
	Name string `json:"name" jsonschema:"the skill name"`
}

// GetSkillOutput is the get_skill result.
type GetSkillOutput struct {
	Name        string `json:"name" jsonschema:"the skill name"`
	Description string `json:"description" jsonschema:"one-line summary"`
	Content     string `json:"content" jsonschema:"the skill's full markdown content"`
}

func (s *skillService) GetSkill(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetSkillInput,
) (*mcp.CallToolResult, GetSkillOutput, error) {
	if input.Name == "" {
		return nil, GetSkillOutput{}, errors.New("name is required")
	}

	sk, err := s.lib.Get(input.Name)
	if err != nil {
		return nil, GetSkillOutput{}, err
	}
	return nil, GetSkillOutput{
		Name:        sk.Name,
		Description: sk.Description,
		Content:     sk.Instructions,
	}, nil
}

func summarize(sk *skill.Skill) SkillSummary {
	return SkillSummary{
		Name:        sk.Name,
		Description: sk.Description,
		Keywords:    sk.Keywords,
	}
}
