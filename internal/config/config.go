// Package config provides configuration management for skillet using Viper.
package config

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/skillet-ai/skillet/internal/paths"
)

// DefaultModel is the Anthropic model used when none is configured.
const DefaultModel = "claude-sonnet-4-20250514"

// Default agent loop limits.
const (
	DefaultMaxSteps  = 16
	DefaultMaxTokens = 4096
)

// Config represents the top-level configuration structure.
type Config struct {
	Version int         `mapstructure:"version" yaml:"version"`
	Model   string      `mapstructure:"model" yaml:"model"`
	Agent   AgentConfig `mapstructure:"agent" yaml:"agent"`
	Skills  SkillConfig `mapstructure:"skills" yaml:"skills"`
}

// AgentConfig tunes the agent runner.
type AgentConfig struct {
	// Mode selects the default agent topology: "single" or "team".
	Mode string `mapstructure:"mode" yaml:"mode"`

	// MaxSteps caps model/tool round trips per query.
	MaxSteps int `mapstructure:"max_steps" yaml:"max_steps"`

	// MaxTokens caps tokens per model response.
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// SkillConfig controls skill discovery.
type SkillConfig struct {
	// Dirs lists skill roots to scan. Empty means the default roots
	// (project, user, and Claude Code skill directories).
	Dirs []string `mapstructure:"dirs" yaml:"dirs"`

	// IncludeBuiltin loads the skills embedded in the binary.
	IncludeBuiltin bool `mapstructure:"include_builtin" yaml:"include_builtin"`
}

// Init initializes Viper with defaults and search paths.
// Call once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("SKILLET")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("model", DefaultModel)
	viper.SetDefault("agent.mode", "single")
	viper.SetDefault("agent.max_steps", DefaultMaxSteps)
	viper.SetDefault("agent.max_tokens", DefaultMaxTokens)
	viper.SetDefault("skills.include_builtin", true)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file and missing files
// are an error. If path is empty, the default locations are searched and
// a missing file falls back to defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}
