package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/skillet-ai/skillet/internal/config"
	"github.com/skillet-ai/skillet/internal/logging"
	"github.com/skillet-ai/skillet/internal/paths"
	"github.com/skillet-ai/skillet/internal/skill"
	"github.com/skillet-ai/skillet/internal/skill/validator"
)

// apiKeyEnv is the environment variable holding the Anthropic API key.
const apiKeyEnv = "ANTHROPIC_API_KEY"

// APIKeyCheck verifies the Anthropic API key is present.
type APIKeyCheck struct{}

var _ Check = (*APIKeyCheck)(nil)

func NewAPIKeyCheck() *APIKeyCheck { return &APIKeyCheck{} }

func (c *APIKeyCheck) Name() string     { return "api-key" }
func (c *APIKeyCheck) Category() string { return "api" }

func (c *APIKeyCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	key := os.Getenv(apiKeyEnv)
	switch {
	case key == "":
		result.Status = SeverityError
		result.Message = apiKeyEnv + " is not set"
		result.FixHint = "Export your Anthropic API key: export " + apiKeyEnv + "=sk-..."
	case len(key) < 20:
		result.Status = SeverityWarning
		result.Message = apiKeyEnv + " looks too short to be a valid key"
	default:
		result.Status = SeverityPass
		result.Message = apiKeyEnv + " is set"
	}
	return result
}

// ConfigCheck verifies the config file loads and validates.
type ConfigCheck struct {
	// Path overrides the config file location; empty uses defaults.
	Path string
}

var _ Check = (*ConfigCheck)(nil)

func NewConfigCheck(path string) *ConfigCheck { return &ConfigCheck{Path: path} }

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	cfg, err := config.Load(c.Path)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("config failed to load: %v", err)
		result.FixHint = "Fix or remove the config file at " + paths.ConfigFile()
		return result
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("config has %d validation error(s)", len(errs))
		details := make(map[string]any, len(errs))
		for i, e := range errs {
			details[fmt.Sprintf("error_%d", i+1)] = e.Error()
		}
		result.Details = details
		return result
	}

	result.Status = SeverityPass
	result.Message = "config is valid"
	result.Details = map[string]any{
		"model": cfg.Model,
		"mode":  cfg.Agent.Mode,
	}
	return result
}

// SkillRootsCheck reports which skill directories exist.
type SkillRootsCheck struct {
	Roots []string
}

var _ Check = (*SkillRootsCheck)(nil)

func NewSkillRootsCheck(roots []string) *SkillRootsCheck {
	return &SkillRootsCheck{Roots: roots}
}

func (c *SkillRootsCheck) Name() string     { return "skill-roots" }
func (c *SkillRootsCheck) Category() string { return "skills" }

func (c *SkillRootsCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	details := make(map[string]any, len(c.Roots))
	var existing int
	for _, root := range c.Roots {
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			details[root] = "exists"
			existing++
		} else {
			details[root] = "missing"
		}
	}
	result.Details = details

	if existing == 0 {
		result.Status = SeverityInfo
		result.Message = "no skill directories exist yet; only builtin skills will load"
		result.FixHint = "Create " + paths.UserSkillDir() + " and add <name>.skill.md files"
	} else {
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d of %d skill directories exist", existing, len(c.Roots))
	}
	return result
}

// SkillValidityCheck loads every skill and validates it.
type SkillValidityCheck struct {
	Roots []string
}

var _ Check = (*SkillValidityCheck)(nil)

func NewSkillValidityCheck(roots []string) *SkillValidityCheck {
	return &SkillValidityCheck{Roots: roots}
}

func (c *SkillValidityCheck) Name() string     { return "skill-validity" }
func (c *SkillValidityCheck) Category() string { return "skills" }

func (c *SkillValidityCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	lib := skill.NewLibrary(logging.NewDiscard())
	if err := lib.LoadRoots(context.Background(), c.Roots); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("loading skills failed: %v", err)
		return result
	}

	v := validator.New()
	var invalid int
	details := make(map[string]any)
	for _, s := range lib.List() {
		if errs := v.ValidateWithPath(s, s.Path); len(errs) > 0 {
			invalid++
			details[s.Name] = errs[0].Error()
		}
	}

	switch {
	case lib.Len() == 0:
		result.Status = SeverityInfo
		result.Message = "no skills found on disk"
	case invalid > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d of %d skills have validation issues", invalid, lib.Len())
		result.Details = details
		result.FixHint = "Run: skillet skill validate"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("all %d skills are valid", lib.Len())
	}
	return result
}
