// Package frontmatter parses and formats YAML frontmatter in markdown
// files such as SKILL.md and *.skill.md.
package frontmatter

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// delimiter marks the start and end of a frontmatter block.
const delimiter = "---"

// ErrMissingFrontmatter is returned by MustParse when no frontmatter is found.
var ErrMissingFrontmatter = errors.New("missing frontmatter")

// ErrUnclosedFrontmatter is returned when the opening delimiter has no
// matching closing delimiter.
var ErrUnclosedFrontmatter = errors.New("missing closing frontmatter delimiter")

// Parse extracts YAML frontmatter and body content from a reader.
// If no frontmatter is present, the struct is left untouched and the
// full content is returned as the body.
func Parse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, false)
}

// MustParse is like Parse but fails when no frontmatter is found.
// Skill files require frontmatter; use this for them.
func MustParse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, true)
}

func parse[T any](r io.Reader, matter *T, required bool) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	block, body, found, err := split(content)
	if err != nil {
		if required {
			return nil, err
		}
		return content, nil
	}
	if !found {
		if required {
			return nil, ErrMissingFrontmatter
		}
		return content, nil
	}

	if err := yaml.Unmarshal(block, matter); err != nil {
		return nil, errors.Wrap(err, "parsing frontmatter")
	}
	return body, nil
}

// split separates content into frontmatter block and body.
// found is false when the content does not start with a delimiter line.
func split(content []byte) (block, body []byte, found bool, err error) {
	if !hasDelimiterPrefix(content) {
		return nil, content, false, nil
	}

	// Skip the opening delimiter line, tolerating CRLF.
	rest := content[len(delimiter):]
	rest = bytes.TrimPrefix(rest, []byte("\r"))
	rest = bytes.TrimPrefix(rest, []byte("\n"))

	// The closing delimiter must start a line.
	for _, sep := range [][]byte{[]byte("\n---"), []byte("\r\n---")} {
		if idx := bytes.Index(rest, sep); idx >= 0 {
			block = rest[:idx]
			body = rest[idx+len(sep):]
			// Drop the line break residue after the closing delimiter,
			// plus the single blank separator line Format writes.
			body = bytes.TrimPrefix(body, []byte("\r"))
			body = bytes.TrimPrefix(body, []byte("\n"))
			body = bytes.TrimPrefix(body, []byte("\r"))
			body = bytes.TrimPrefix(body, []byte("\n"))
			return block, body, true, nil
		}
	}

	return nil, nil, false, ErrUnclosedFrontmatter
}

func hasDelimiterPrefix(content []byte) bool {
	return bytes.HasPrefix(content, []byte(delimiter+"\n")) ||
		bytes.HasPrefix(content, []byte(delimiter+"\r\n"))
}

// ParseHeader parses only the frontmatter, stopping at the closing
// delimiter without consuming the body. Listing many skills uses this to
// avoid reading full instruction bodies. Content without frontmatter is
// a silent success; matter remains zero.
func ParseHeader(r io.Reader, matter any) error {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return scanner.Err()
	}
	if strings.TrimSpace(scanner.Text()) != delimiter {
		return nil
	}

	var buf bytes.Buffer
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == delimiter {
			return yaml.Unmarshal(buf.Bytes(), matter)
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return ErrUnclosedFrontmatter
}

// Format renders a frontmatter struct and body as a markdown document.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString(delimiter + "\n")
	if body != "" {
		buf.WriteByte('\n')
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes(), nil
}
