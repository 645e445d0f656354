package validator

import (
	"strings"
	"testing"

	"github.com/skillet-ai/skillet/internal/skill"
)

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name      string
		skill     *skill.Skill
		wantErrs  int
		wantField string
		wantMsg   string
	}{
		{
			name: "valid skill",
			skill: &skill.Skill{
				Name:        "my-skill",
				Description: "A test skill",
			},
			wantErrs: 0,
		},
		{
			name: "single char name",
			skill: &skill.Skill{
				Name:        "a",
				Description: "Single character name",
			},
			wantErrs: 0,
		},
		{
			name: "max length name",
			skill: &skill.Skill{
				Name:        strings.Repeat("a", 64),
				Description: "Max length name",
			},
			wantErrs: 0,
		},
		{
			name:      "missing name",
			skill:     &skill.Skill{Description: "No name"},
			wantErrs:  1,
			wantField: "name",
			wantMsg:   "required",
		},
		{
			name: "name too long",
			skill: &skill.Skill{
				Name:        strings.Repeat("a", 65),
				Description: "desc",
			},
			wantErrs:  1,
			wantField: "name",
			wantMsg:   "maximum length",
		},
		{
			name: "uppercase name",
			skill: &skill.Skill{
				Name:        "MySkill",
				Description: "desc",
			},
			wantErrs:  1,
			wantField: "name",
			wantMsg:   "lowercase",
		},
		{
			name: "leading hyphen",
			skill: &skill.Skill{
				Name:        "-skill",
				Description: "desc",
			},
			wantErrs:  1,
			wantField: "name",
			wantMsg:   "start or end",
		},
		{
			name: "consecutive hyphens",
			skill: &skill.Skill{
				Name:        "my--skill",
				Description: "desc",
			},
			wantErrs:  1,
			wantField: "name",
			wantMsg:   "consecutive",
		},
		{
			name:      "missing description",
			skill:     &skill.Skill{Name: "my-skill"},
			wantErrs:  1,
			wantField: "description",
			wantMsg:   "required",
		},
		{
			name: "description too long",
			skill: &skill.Skill{
				Name:        "my-skill",
				Description: strings.Repeat("d", 1025),
			},
			wantErrs:  1,
			wantField: "description",
			wantMsg:   "maximum length",
		},
		{
			name:     "both fields missing",
			skill:    &skill.Skill{},
			wantErrs: 2,
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.skill)
			if len(errs) != tt.wantErrs {
				t.Fatalf("got %d errors %v, want %d", len(errs), errs, tt.wantErrs)
			}
			if tt.wantErrs == 0 {
				return
			}
			ve, ok := errs[0].(*ValidationError)
			if !ok {
				t.Fatalf("error is %T, want *ValidationError", errs[0])
			}
			if tt.wantField != "" && ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
			if tt.wantMsg != "" && !strings.Contains(ve.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want substring %q", ve.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidator_ValidateWithPath(t *testing.T) {
	v := New()
	s := &skill.Skill{Name: "my-skill", Description: "desc"}

	// Directory matches: ok.
	if errs := v.ValidateWithPath(s, "/skills/my-skill/SKILL.md"); errs != nil {
		t.Errorf("matching dir should pass, got %v", errs)
	}

	// Directory mismatch for SKILL.md.
	errs := v.ValidateWithPath(s, "/skills/other/SKILL.md")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}

	// Flat files are exempt from the directory rule.
	if errs := v.ValidateWithPath(s, "/skills/anything/my.skill.md"); errs != nil {
		t.Errorf("flat file should be exempt, got %v", errs)
	}
}
