package doctor

import (
	"os"
	"path/filepath"
	"testing"
)

// staticCheck returns a fixed result, for testing the runner.
type staticCheck struct {
	name   string
	status Severity
}

func (c *staticCheck) Name() string     { return c.name }
func (c *staticCheck) Category() string { return "test" }
func (c *staticCheck) Run() *CheckResult {
	return &CheckResult{Name: c.name, Category: "test", Status: c.status}
}

func TestRunnerSummary(t *testing.T) {
	runner := NewRunner()
	runner.AddCheck(&staticCheck{name: "a", status: SeverityPass})
	runner.AddCheck(&staticCheck{name: "b", status: SeverityInfo})
	runner.AddCheck(&staticCheck{name: "c", status: SeverityWarning})
	runner.AddCheck(&staticCheck{name: "d", status: SeverityError})
	runner.AddCheck(&staticCheck{name: "e", status: SeverityPass})

	report := runner.Run()

	if len(report.Results) != 5 {
		t.Fatalf("got %d results, want 5", len(report.Results))
	}
	if report.Summary.Passed != 2 || report.Summary.Info != 1 ||
		report.Summary.Warnings != 1 || report.Summary.Errors != 1 {
		t.Errorf("summary = %+v", report.Summary)
	}
	if !report.HasErrors() {
		t.Error("HasErrors = false")
	}
	if !report.HasWarnings() {
		t.Error("HasWarnings = false")
	}
	if report.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestAPIKeyCheck(t *testing.T) {
	check := NewAPIKeyCheck()

	t.Setenv(apiKeyEnv, "")
	if got := check.Run(); got.Status != SeverityError {
		t.Errorf("missing key: status = %v, want error", got.Status)
	}

	t.Setenv(apiKeyEnv, "short")
	if got := check.Run(); got.Status != SeverityWarning {
		t.Errorf("short key: status = %v, want warning", got.Status)
	}

	t.Setenv(apiKeyEnv, "sk-ant-REDACTED")
	if got := check.Run(); got.Status != SeverityPass {
		t.Errorf("good key: status = %v, want pass", got.Status)
	}
}

func TestSkillRootsCheck(t *testing.T) {
	existing := t.TempDir()
	missing := filepath.Join(existing, "nope")

	got := NewSkillRootsCheck([]string{existing, missing}).Run()
	if got.Status != SeverityPass {
		t.Errorf("status = %v, want pass", got.Status)
	}
	if got.Details[existing] != "exists" || got.Details[missing] != "missing" {
		t.Errorf("details = %v", got.Details)
	}

	got = NewSkillRootsCheck([]string{missing}).Run()
	if got.Status != SeverityInfo {
		t.Errorf("all missing: status = %v, want info", got.Status)
	}
}

func TestSkillValidityCheck(t *testing.T) {
	dir := t.TempDir()

	valid := `---
name: good-skill
description: A perfectly fine skill.
---
Content.
`
	if err := os.WriteFile(filepath.Join(dir, "good-skill.skill.md"), []byte(valid), 0o644); err != nil {
		t.Fatal(err)
	}

	got := NewSkillValidityCheck([]string{dir}).Run()
	if got.Status != SeverityPass {
		t.Errorf("status = %v (%s), want pass", got.Status, got.Message)
	}

	// A skill whose name violates the naming rules.
	bad := `---
name: Bad_Name
description: Broken name.
---
Content.
`
	if err := os.WriteFile(filepath.Join(dir, "bad.skill.md"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	got = NewSkillValidityCheck([]string{dir}).Run()
	if got.Status != SeverityWarning {
		t.Errorf("status = %v (%s), want warning", got.Status, got.Message)
	}

	got = NewSkillValidityCheck([]string{filepath.Join(dir, "empty")}).Run()
	if got.Status != SeverityInfo {
		t.Errorf("no skills: status = %v, want info", got.Status)
	}
}
