package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillet-ai/skillet/internal/logging"
	"github.com/skillet-ai/skillet/internal/skill"
)

// setupServerClient wires the MCP server and a client together over
// in-memory transports, backed by a library with two loaded skills.
func setupServerClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	dir := t.TempDir()
	skills := map[string]string{
		"react-hooks": `---
name: react-hooks
description: Patterns for React hooks.
keywords: [react, hooks]
---
Use useState for local state.
`,
		"go-errors": `---
name: go-errors
description: Error handling conventions for Go.
keywords: [go, errors]
---
Wrap errors with context.
`,
	}
	for name, content := range skills {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".skill.md"), []byte(content), 0o644))
	}

	lib := skill.NewLibrary(logging.ForTest(t))
	require.NoError(t, lib.LoadRoots(context.Background(), []string{dir}))

	server := New(lib, logging.ForTest(t))
	st, ct := mcp.NewInMemoryTransports()

	ctx := context.Background()
	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})

	return session
}

func TestMCPListTools(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, result.Tools, 3)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)
	assert.Equal(t, []string{"get_skill", "list_skills", "search_skills"}, names)
}

func TestMCPListSkills(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_skills",
		Arguments: ListSkillsInput{},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.NotNil(t, result.StructuredContent)

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)

	var output ListSkillsOutput
	require.NoError(t, json.Unmarshal(raw, &output))

	assert.Equal(t, 2, output.Count)
	names := []string{output.Skills[0].Name, output.Skills[1].Name}
	sort.Strings(names)
	assert.Equal(t, []string{"go-errors", "react-hooks"}, names)
}

func TestMCPSearchSkills(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "search_skills",
		Arguments: SearchSkillsInput{Query: "react"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)

	var output SearchSkillsOutput
	require.NoError(t, json.Unmarshal(raw, &output))

	require.Len(t, output.Skills, 1)
	assert.Equal(t, "react-hooks", output.Skills[0].Name)
}

func TestMCPGetSkill(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_skill",
		Arguments: GetSkillInput{Name: "go-errors"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)

	var output GetSkillOutput
	require.NoError(t, json.Unmarshal(raw, &output))

	assert.Equal(t, "go-errors", output.Name)
	assert.Contains(t, output.Content, "Wrap errors with context")
}

func TestMCPGetSkillNotFound(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_skill",
		Arguments: GetSkillInput{Name: "missing"},
	})
	if err != nil {
		return // protocol-level error is acceptable
	}
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
