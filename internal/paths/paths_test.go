package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
	if perm := info.Mode().Perm(); perm != DefaultDirPerm {
		t.Errorf("perm = %o, want %o", perm, DefaultDirPerm)
	}

	// Idempotent on existing directory.
	if err := EnsureDir(dir, 0); err != nil {
		t.Errorf("EnsureDir on existing dir failed: %v", err)
	}
}

func TestProjectSkillDir(t *testing.T) {
	if got := ProjectSkillDir(""); got != "" {
		t.Errorf("ProjectSkillDir(\"\") = %q, want empty", got)
	}

	got := ProjectSkillDir("/work/proj")
	want := filepath.Join("/work/proj", ".skillet", "skills")
	if got != want {
		t.Errorf("ProjectSkillDir = %q, want %q", got, want)
	}
}

func TestConfigFile(t *testing.T) {
	got := ConfigFile()
	if !strings.HasSuffix(got, filepath.Join(AppName, "config.yaml")) {
		t.Errorf("ConfigFile = %q, want .../%s/config.yaml", got, AppName)
	}
}

func TestDefaultSkillRoots(t *testing.T) {
	roots := DefaultSkillRoots("/work/proj")

	if len(roots) < 2 {
		t.Fatalf("expected at least project and user roots, got %v", roots)
	}
	if roots[0] != filepath.Join("/work/proj", ".skillet", "skills") {
		t.Errorf("first root should be the project dir, got %q", roots[0])
	}
	if roots[1] != UserSkillDir() {
		t.Errorf("second root should be the user dir, got %q", roots[1])
	}

	// Without a project root, the project dir is omitted.
	noProject := DefaultSkillRoots("")
	if noProject[0] != UserSkillDir() {
		t.Errorf("first root without project should be the user dir, got %q", noProject[0])
	}
}
