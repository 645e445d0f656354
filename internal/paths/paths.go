package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/skillet-ai/skillet/internal/errors"
)

// AppName is used for config, data, and cache subdirectories.
const AppName = "skillet"

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// EnsureDir creates the directory and any necessary parents with the given
// permissions. If perm is 0, DefaultDirPerm (0700) is used. Idempotent.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string on error.
// Use ResolveHome when the error matters.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// CacheHome returns the XDG cache home directory.
func CacheHome() string {
	return xdg.CacheHome
}

// ConfigDir returns the skillet config directory: <ConfigHome>/skillet.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default config file path:
// <ConfigHome>/skillet/config.yaml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// UserSkillDir returns the user-level skill directory:
// <ConfigHome>/skillet/skills.
func UserSkillDir() string {
	return filepath.Join(ConfigDir(), "skills")
}

// ProjectSkillDir returns the project-level skill directory relative to
// the given root: <root>/.skillet/skills. Returns an empty string when
// root is empty.
func ProjectSkillDir(root string) string {
	if root == "" {
		return ""
	}
	return filepath.Join(root, ".skillet", "skills")
}

// ClaudeSkillDir returns the Claude Code user skill directory
// (~/.claude/skills), scanned for compatibility with skills installed by
// other tooling. Returns an empty string when home cannot be resolved.
func ClaudeSkillDir() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".claude", "skills")
}

// DefaultSkillRoots returns the skill directories scanned when the user
// configures none, most specific first: project, user, then Claude Code.
func DefaultSkillRoots(projectRoot string) []string {
	var roots []string
	if dir := ProjectSkillDir(projectRoot); dir != "" {
		roots = append(roots, dir)
	}
	roots = append(roots, UserSkillDir())
	if dir := ClaudeSkillDir(); dir != "" {
		roots = append(roots, dir)
	}
	return roots
}
