package skill

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	skilleterrors "github.com/skillet-ai/skillet/internal/errors"
)

// Library holds the loaded skill set keyed by name.
// It is safe for concurrent use.
type Library struct {
	mu     sync.RWMutex
	skills map[string]*Skill
	logger *slog.Logger
}

// NewLibrary creates an empty Library. A nil logger falls back to
// slog.Default.
func NewLibrary(logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		skills: make(map[string]*Skill),
		logger: logger,
	}
}

// LoadRoots scans the given directories for skill files and adds every
// parseable skill to the library. Roots are scanned concurrently but
// merged in argument order, so duplicate resolution is deterministic:
// the skill from the earliest root wins.
//
// Missing roots are skipped. Malformed skill files are logged at warn
// and skipped; loading only fails on traversal errors.
func (l *Library) LoadRoots(ctx context.Context, roots []string) error {
	found := make([][]*Skill, len(roots))

	g, ctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			skills, err := l.scanRoot(ctx, root)
			if err != nil {
				return err
			}
			found[i] = skills
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, skills := range found {
		for _, s := range skills {
			l.add(s)
		}
	}
	return nil
}

// scanRoot walks one root collecting skills from both conventions.
// Within a root, results are ordered by path for determinism.
func (l *Library) scanRoot(ctx context.Context, root string) ([]*Skill, error) {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "checking skill root %s", root)
	}

	var skills []*Skill
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !isSkillFile(path) {
			return nil
		}

		s, perr := ParseFile(path)
		if perr != nil {
			l.logger.Warn("skipping unparseable skill file", "path", path, "error", perr)
			return nil
		}
		skills = append(skills, s)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning skill root %s", root)
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].Path < skills[j].Path })
	return skills, nil
}

// LoadFS adds skills from an fs.FS, used for skills embedded in the
// binary. Embedded skills lose duplicate conflicts to already loaded
// on-disk skills, so call this after LoadRoots.
func (l *Library) LoadFS(fsys fs.FS, source string) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSkillFile(path) {
			return nil
		}

		data, rerr := fs.ReadFile(fsys, path)
		if rerr != nil {
			return errors.Wrapf(rerr, "reading embedded skill %s", path)
		}
		s, perr := ParseBytes(data, path)
		if perr != nil {
			return errors.Wrapf(perr, "parsing embedded skill %s", path)
		}
		s.Path = "" // embedded skills have no on-disk location
		if s.Metadata == nil {
			s.Metadata = map[string]string{}
		}
		s.Metadata["source"] = source
		l.add(s)
		return nil
	})
}

// isSkillFile matches both skill file conventions.
func isSkillFile(path string) bool {
	base := filepath.Base(path)
	return base == "SKILL.md" || strings.HasSuffix(base, ".skill.md")
}

// add inserts a skill, keeping the existing one on name conflict.
func (l *Library) add(s *Skill) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.skills[s.Name]; ok {
		l.logger.Warn("duplicate skill name, keeping first",
			"name", s.Name, "kept", prev.Path, "ignored", s.Path)
		return
	}
	l.skills[s.Name] = s
	l.logger.Debug("loaded skill", "name", s.Name, "path", s.Path)
}

// Get returns the skill with the given name.
func (l *Library) Get(name string) (*Skill, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, ok := l.skills[name]
	if !ok {
		return nil, errors.Wrapf(skilleterrors.ErrSkillNotFound, "%q", name)
	}
	return s, nil
}

// List returns all skills sorted by name.
func (l *Library) List() []*Skill {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Skill, 0, len(l.skills))
	for _, s := range l.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns all skill names sorted.
func (l *Library) Names() []string {
	skills := l.List()
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of loaded skills.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.skills)
}
