// Package skill loads and indexes skill files: markdown knowledge
// documents with optional YAML frontmatter that agents consult at
// runtime.
//
// Two on-disk conventions are recognized:
//
//   - flat files named *.skill.md anywhere under a root
//   - directories containing a SKILL.md file
//
// Frontmatter is optional for flat files; missing metadata is derived
// from the file itself (name from the stem, description from the first
// body line, keywords from headings and code fences).
package skill

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/skillet-ai/skillet/pkg/frontmatter"
)

// maxDescriptionLen caps descriptions derived from the body.
const maxDescriptionLen = 200

// Skill is a loaded skill document.
type Skill struct {
	// Name is the unique identifier, from frontmatter or the filename.
	Name string

	// Description summarizes the skill for model tool-selection.
	Description string

	// Keywords aid search: frontmatter keywords plus terms extracted
	// from headings and code-fence languages.
	Keywords []string

	// Metadata carries optional key-value pairs (author, version, ...).
	Metadata map[string]string

	// Path is the source file location; empty for embedded skills.
	Path string

	// Instructions is the markdown body.
	Instructions string
}

// Matter is the YAML frontmatter shape of a skill file.
type Matter struct {
	Name        string            `yaml:"name,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Keywords    []string          `yaml:"keywords,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// ParseFile reads and parses a skill file from disk.
func ParseFile(path string) (*Skill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading skill file %s", path)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses skill content. The path determines the fallback name:
// the directory name for SKILL.md files, otherwise the file stem with a
// trailing ".skill" trimmed.
func ParseBytes(data []byte, path string) (*Skill, error) {
	var matter Matter
	body, err := frontmatter.Parse(bytes.NewReader(data), &matter)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing skill file %s", path)
	}

	instructions := strings.TrimSpace(string(body))

	s := &Skill{
		Name:         matter.Name,
		Description:  matter.Description,
		Metadata:     matter.Metadata,
		Path:         path,
		Instructions: instructions,
	}

	if s.Name == "" {
		s.Name = fallbackName(path)
	}
	if s.Description == "" {
		s.Description = leadingLine(instructions)
	}
	s.Keywords = mergeKeywords(matter.Keywords, extractKeywords(s.Name, instructions))

	return s, nil
}

// fallbackName derives a skill name from its path.
func fallbackName(path string) string {
	base := filepath.Base(path)
	if base == "SKILL.md" {
		return filepath.Base(filepath.Dir(path))
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(name, ".skill")
}

// leadingLine returns the first non-empty, non-heading line of the body,
// truncated to maxDescriptionLen runes.
func leadingLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		runes := []rune(line)
		if len(runes) > maxDescriptionLen {
			return string(runes[:maxDescriptionLen])
		}
		return line
	}
	return ""
}
