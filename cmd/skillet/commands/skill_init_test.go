package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skillet-ai/skillet/internal/skill"
)

func setupInitFlags(t *testing.T, dir, description string) {
	t.Helper()
	prevDir, prevDesc := skillInitDir, skillInitDescription
	t.Cleanup(func() {
		skillInitDir, skillInitDescription = prevDir, prevDesc
	})
	skillInitDir = dir
	skillInitDescription = description
}

func TestSkillInitCommand(t *testing.T) {
	dir := t.TempDir()
	setupInitFlags(t, dir, "Team code style rules.")

	var buf bytes.Buffer
	if err := runSkillInitWithWriter("team-style", &buf); err != nil {
		t.Fatalf("init: %v", err)
	}

	path := filepath.Join(dir, "team-style.skill.md")
	if !strings.Contains(buf.String(), path) {
		t.Errorf("output missing path:\n%s", buf.String())
	}

	// The scaffold must parse back as a valid skill.
	s, err := skill.ParseFile(path)
	if err != nil {
		t.Fatalf("parsing scaffold: %v", err)
	}
	if s.Name != "team-style" {
		t.Errorf("Name = %q", s.Name)
	}
	if s.Description != "Team code style rules." {
		t.Errorf("Description = %q", s.Description)
	}
}

func TestSkillInitCommandBadName(t *testing.T) {
	setupInitFlags(t, t.TempDir(), "desc")

	var buf bytes.Buffer
	if err := runSkillInitWithWriter("Bad_Name", &buf); err == nil {
		t.Fatal("expected error for invalid name")
	}
}

func TestSkillInitCommandExisting(t *testing.T) {
	dir := t.TempDir()
	setupInitFlags(t, dir, "desc")

	path := filepath.Join(dir, "taken.skill.md")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := runSkillInitWithWriter("taken", &buf); err == nil {
		t.Fatal("expected error for existing skill")
	}
}
