package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/skillet-ai/skillet/internal/llm"
	"github.com/skillet-ai/skillet/pkg/fileutil"
)

// File tool limits.
const (
	maxReadBytes    = 10 << 20 // 10 MiB
	defaultMaxLines = 500
	maxListEntries  = 100
)

// deniedWritePrefixes are path prefixes write_file refuses to touch.
var deniedWritePrefixes = []string{"/etc", "/usr", "/bin", "/sbin", "/var", "/boot"}

// FileTools returns the filesystem tools.
func FileTools() []Tool {
	return []Tool{
		&readFileTool{},
		&writeFileTool{},
		&listDirTool{},
	}
}

// resolvePath expands ~ and returns an absolute, cleaned path.
func resolvePath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolving home directory")
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// readFileTool reads a text file with size and line caps.
type readFileTool struct{}

type readFileInput struct {
	Path     string `json:"path"`
	MaxLines int    `json:"max_lines,omitempty"`
}

func (t *readFileTool) Name() string { return "read_file" }

func (t *readFileTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        t.Name(),
		Description: "Read the contents of a text file.",
		Properties: map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "Absolute or relative file path.",
			},
			"max_lines": map[string]any{
				"type":        "integer",
				"description": "Maximum lines to return (default 500).",
			},
		},
		Required: []string{"path"},
	}
}

func (t *readFileTool) Call(_ context.Context, input json.RawMessage) (string, error) {
	var in readFileInput
	if err := unmarshalInput(input, &in); err != nil {
		return "", err
	}
	if in.MaxLines <= 0 {
		in.MaxLines = defaultMaxLines
	}

	path, err := resolvePath(in.Path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("Error: file does not exist: %s", in.Path), nil
	case err != nil:
		return fmt.Sprintf("Error: cannot access %s: %v", in.Path, err), nil
	case info.IsDir():
		return fmt.Sprintf("Error: %s is a directory, use list_dir instead", in.Path), nil
	}

	data, err := fileutil.ReadFileWithLimit(path, maxReadBytes)
	if err != nil {
		if errors.Is(err, fileutil.ErrFileTooLarge) {
			return fmt.Sprintf("Error: file too large (%d bytes, limit %d)", info.Size(), maxReadBytes), nil
		}
		return fmt.Sprintf("Error: reading %s: %v", in.Path, err), nil
	}

	content := string(data)
	lines := strings.Split(content, "\n")
	if len(lines) > in.MaxLines {
		content = strings.Join(lines[:in.MaxLines], "\n") +
			fmt.Sprintf("\n\n... (%d lines total, showing first %d)", len(lines), in.MaxLines)
	}

	return fmt.Sprintf("## File: %s\n\n```\n%s\n```", filepath.Base(path), content), nil
}

// writeFileTool writes a file, refusing system directories.
type writeFileTool struct{}

type writeFileInput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (t *writeFileTool) Name() string { return "write_file" }

func (t *writeFileTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        t.Name(),
		Description: "Write content to a file, creating it and any parent directories. System directories are refused.",
		Properties: map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "Target file path.",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "Content to write.",
			},
		},
		Required: []string{"path", "content"},
	}
}

func (t *writeFileTool) Call(_ context.Context, input json.RawMessage) (string, error) {
	var in writeFileInput
	if err := unmarshalInput(input, &in); err != nil {
		return "", err
	}

	path, err := resolvePath(in.Path)
	if err != nil {
		return "", err
	}

	for _, prefix := range deniedWritePrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+string(filepath.Separator)) {
			return fmt.Sprintf("Security error: writing under %s is not allowed", prefix), nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Sprintf("Error: creating parent directory: %v", err), nil
	}
	if err := fileutil.AtomicWriteFile(path, []byte(in.Content), 0o644); err != nil {
		return fmt.Sprintf("Error: writing %s: %v", in.Path, err), nil
	}

	return fmt.Sprintf("Wrote %d bytes to %s", len(in.Content), path), nil
}

// listDirTool lists directory entries, directories first.
type listDirTool struct{}

type listDirInput struct {
	Path    string `json:"path"`
	Pattern string `json:"pattern,omitempty"`
}

func (t *listDirTool) Name() string { return "list_dir" }

func (t *listDirTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        t.Name(),
		Description: "List the files and subdirectories of a directory.",
		Properties: map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "Directory path.",
			},
			"pattern": map[string]any{
				"type":        "string",
				"description": "Optional glob pattern to filter entries (default *).",
			},
		},
		Required: []string{"path"},
	}
}

func (t *listDirTool) Call(_ context.Context, input json.RawMessage) (string, error) {
	var in listDirInput
	if err := unmarshalInput(input, &in); err != nil {
		return "", err
	}
	if in.Pattern == "" {
		in.Pattern = "*"
	}

	path, err := resolvePath(in.Path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("Error: directory does not exist: %s", in.Path), nil
	case err != nil:
		return fmt.Sprintf("Error: cannot access %s: %v", in.Path, err), nil
	case !info.IsDir():
		return fmt.Sprintf("Error: %s is not a directory", in.Path), nil
	}

	matches, err := filepath.Glob(filepath.Join(path, in.Pattern))
	if err != nil {
		return fmt.Sprintf("Error: invalid pattern %q: %v", in.Pattern, err), nil
	}

	type entry struct {
		name  string
		isDir bool
		size  int64
	}
	entries := make([]entry, 0, len(matches))
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil {
			continue
		}
		entries = append(entries, entry{name: filepath.Base(m), isDir: fi.IsDir(), size: fi.Size()})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir != entries[j].isDir {
			return entries[i].isDir
		}
		return strings.ToLower(entries[i].name) < strings.ToLower(entries[j].name)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "## Directory: %s\n\n%d entries\n\n", path, len(entries))
	shown := entries
	if len(shown) > maxListEntries {
		shown = shown[:maxListEntries]
	}
	for _, e := range shown {
		if e.isDir {
			fmt.Fprintf(&b, "%s/\n", e.name)
		} else {
			fmt.Fprintf(&b, "%s (%d bytes)\n", e.name, e.size)
		}
	}
	if rest := len(entries) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "\n... %d more entries not shown\n", rest)
	}
	return b.String(), nil
}
