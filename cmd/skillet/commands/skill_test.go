package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/internal/config"
	"github.com/skillet-ai/skillet/internal/logging"
)

// setupSkillTree writes a couple of skills and points --skill-dir at them.
func setupSkillTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	skills := map[string]string{
		"react-hooks": `---
name: react-hooks
description: Patterns for React hooks and state.
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
		if err := os.WriteFile(filepath.Join(dir, name+".skill.md"), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	prevDirs := skillDirs
	prevCfg := cfg
	skillDirs = []string{dir}
	cfg = &config.Config{Skills: config.SkillConfig{IncludeBuiltin: false}}
	t.Cleanup(func() {
		skillDirs = prevDirs
		cfg = prevCfg
	})
	return dir
}

// testCommand returns a cobra command with a test logger in context.
func testCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.SetContext(logging.NewContext(context.Background(), logging.ForTest(t)))
	return cmd
}

func TestSkillListCommand(t *testing.T) {
	setupSkillTree(t)
	skillListJSON = false

	var buf bytes.Buffer
	if err := runSkillListWithWriter(testCommand(t), &buf); err != nil {
		t.Fatalf("runSkillList: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"react-hooks", "go-errors", "Patterns for React hooks"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSkillListCommandJSON(t *testing.T) {
	setupSkillTree(t)
	skillListJSON = true
	t.Cleanup(func() { skillListJSON = false })

	var buf bytes.Buffer
	if err := runSkillListWithWriter(testCommand(t), &buf); err != nil {
		t.Fatalf("runSkillList: %v", err)
	}

	var infos []skillInfoJSON
	if err := json.Unmarshal(buf.Bytes(), &infos); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	names := make(map[string]bool)
	for _, info := range infos {
		names[info.Name] = true
	}
	if !names["react-hooks"] || !names["go-errors"] {
		t.Errorf("JSON output missing skills: %v", names)
	}
}

func TestSkillShowCommand(t *testing.T) {
	setupSkillTree(t)
	skillShowRaw = false

	var buf bytes.Buffer
	if err := runSkillShowWithWriter(testCommand(t), "go-errors", &buf); err != nil {
		t.Fatalf("runSkillShow: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"go-errors", "Error handling conventions", "Wrap errors with context"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSkillShowCommandRaw(t *testing.T) {
	setupSkillTree(t)
	skillShowRaw = true
	t.Cleanup(func() { skillShowRaw = false })

	var buf bytes.Buffer
	if err := runSkillShowWithWriter(testCommand(t), "go-errors", &buf); err != nil {
		t.Fatalf("runSkillShow: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Wrap errors with context") {
		t.Errorf("raw output missing content:\n%s", out)
	}
	if strings.Contains(out, "Keywords:") {
		t.Errorf("raw output should not include metadata:\n%s", out)
	}
}

func TestSkillShowCommandNotFound(t *testing.T) {
	setupSkillTree(t)

	var buf bytes.Buffer
	if err := runSkillShowWithWriter(testCommand(t), "missing", &buf); err == nil {
		t.Fatal("expected error for unknown skill")
	}
}

func TestSkillSearchCommand(t *testing.T) {
	setupSkillTree(t)
	skillSearchInteractive = false
	skillSearchLimit = 10

	var buf bytes.Buffer
	if err := runSkillSearchWithWriter(testCommand(t), []string{"react"}, &buf); err != nil {
		t.Fatalf("runSkillSearch: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "react-hooks") {
		t.Errorf("output missing match:\n%s", out)
	}
	if strings.Contains(out, "go-errors") {
		t.Errorf("output has unrelated skill:\n%s", out)
	}
}

func TestSkillSearchCommandNoMatch(t *testing.T) {
	setupSkillTree(t)
	skillSearchInteractive = false

	var buf bytes.Buffer
	if err := runSkillSearchWithWriter(testCommand(t), []string{"quantum"}, &buf); err != nil {
		t.Fatalf("runSkillSearch: %v", err)
	}
	if !strings.Contains(buf.String(), "No skills match") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestSkillSearchCommandJSON(t *testing.T) {
	setupSkillTree(t)
	skillSearchInteractive = false
	skillSearchLimit = 10
	skillSearchJSON = true
	t.Cleanup(func() { skillSearchJSON = false })

	var buf bytes.Buffer
	if err := runSkillSearchWithWriter(testCommand(t), []string{"react"}, &buf); err != nil {
		t.Fatalf("runSkillSearch: %v", err)
	}

	var results []searchResultJSON
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(results) != 1 || results[0].Name != "react-hooks" {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Score <= 0 {
		t.Errorf("score = %d, want > 0", results[0].Score)
	}
}

func TestSkillValidateCommandStrict(t *testing.T) {
	dir := t.TempDir()
	validateJSON = false
	validateStrict = true
	t.Cleanup(func() { validateStrict = false })

	full := filepath.Join(dir, "full.skill.md")
	content := `---
name: full
description: Declares everything strict mode wants.
keywords: [strictness]
---
Body content.
`
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := runSkillValidateWithWriter(full, &buf); err != nil {
		t.Fatalf("strict validate of complete skill: %v\n%s", err, buf.String())
	}

	// Valid in normal mode, but the description is derived and no
	// keywords are declared.
	derived := filepath.Join(dir, "derived.skill.md")
	if err := os.WriteFile(derived, []byte("---\nname: derived\ndescription: ok\n---\nBody.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := runSkillValidateWithWriter(derived, &buf); err == nil {
		t.Fatal("expected strict validation failure")
	}
	if !strings.Contains(buf.String(), "keywords") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestSkillValidateCommandValid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "good-skill.skill.md")
	content := `---
name: good-skill
description: A perfectly fine skill.
---
Content.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	validateJSON = false

	var buf bytes.Buffer
	if err := runSkillValidateWithWriter(path, &buf); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(buf.String(), "✓ Skill 'good-skill' is valid") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestSkillValidateCommandInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.skill.md")
	content := `---
name: Bad_Name
description: Broken name.
---
Content.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	validateJSON = false

	var buf bytes.Buffer
	err := runSkillValidateWithWriter(path, &buf)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(buf.String(), "✗ Skill validation failed") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestSkillValidateCommandJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "good-skill.skill.md")
	content := `---
name: good-skill
description: A perfectly fine skill.
---
Content.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	validateJSON = true
	t.Cleanup(func() { validateJSON = false })

	var buf bytes.Buffer
	if err := runSkillValidateWithWriter(path, &buf); err != nil {
		t.Fatalf("validate: %v", err)
	}

	var result validateResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if !result.Valid || result.Skill == nil || result.Skill.Name != "good-skill" {
		t.Errorf("result = %+v", result)
	}
}

func TestSkillValidateCommandMissingFile(t *testing.T) {
	validateJSON = false

	var buf bytes.Buffer
	err := runSkillValidateWithWriter(filepath.Join(t.TempDir(), "gone.skill.md"), &buf)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(buf.String(), "skill file not found") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestSkillValidateCommandDirectory(t *testing.T) {
	dir := t.TempDir()
	skillDir := filepath.Join(dir, "dir-skill")
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `---
name: dir-skill
description: A directory-convention skill.
---
Content.
`
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	validateJSON = false

	var buf bytes.Buffer
	if err := runSkillValidateWithWriter(skillDir, &buf); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(buf.String(), "✓ Skill 'dir-skill' is valid") {
		t.Errorf("output:\n%s", buf.String())
	}
}
