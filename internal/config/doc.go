// Package config provides configuration management for the skillet CLI.
//
// The default configuration file location is <XDG config>/skillet/config.yaml.
// The file uses YAML format:
//
//	version: 1
//	model: claude-sonnet-4-20250514
//	agent:
//	  mode: single        # or "team"
//	  max_steps: 16
//	  max_tokens: 4096
//	skills:
//	  dirs:               # optional; defaults to project/user/claude dirs
//	    - /custom/skills
//	  include_builtin: true
//
// Environment variables with the SKILLET_ prefix override file values,
// e.g. SKILLET_MODEL. Call [Init] once at startup, then [Load].
package config
