package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/skillet-ai/skillet/internal/llm"
)

const (
	defaultCommandTimeout = 60 * time.Second
	maxCommandTimeout     = 5 * time.Minute
	maxCommandOutput      = 50000
)

// allowedCommands maps a program name to the subcommands permitted for it.
// An empty slice means any arguments are acceptable.
var allowedCommands = map[string][]string{
	"ls":      {},
	"pwd":     {},
	"cat":     {},
	"head":    {},
	"tail":    {},
	"wc":      {},
	"grep":    {},
	"find":    {},
	"echo":    {},
	"date":    {},
	"whoami":  {},
	"uname":   {},
	"which":   {},
	"git":     {"status", "log", "diff", "branch"},
	"go":      {"version", "env"},
	"python3": {"--version"},
	"node":    {"--version"},
}

// shellMetachars are sequences that would change command semantics if a
// shell interpreted them. Commands are never run through a shell, but a
// model that sends them is asking for behavior we will not provide.
var shellMetachars = []string{">>", ">", "|", ";", "&", "`", "$("}

// ExecTools returns the command execution and code analysis tools.
func ExecTools() []Tool {
	return []Tool{
		&runCommandTool{timeout: defaultCommandTimeout},
		&analyzeCodeTool{},
	}
}

// runCommandTool runs a single allowlisted command without a shell.
type runCommandTool struct {
	timeout time.Duration
}

type runCommandInput struct {
	Command string `json:"command"`
	Workdir string `json:"workdir,omitempty"`
	// Timeout is in seconds; zero means the default.
	Timeout int `json:"timeout,omitempty"`
}

func (t *runCommandTool) Name() string { return "run_command" }

func (t *runCommandTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        t.Name(),
		Description: "Run a read-only shell command from a small allowlist (ls, cat, grep, git status, ...). Pipes, redirection and command chaining are rejected.",
		Properties: map[string]any{
			"command": map[string]any{
				"type":        "string",
				"description": "Command line to run, e.g. \"ls -la\" or \"git status\".",
			},
			"workdir": map[string]any{
				"type":        "string",
				"description": "Working directory for the command (default: current directory).",
			},
			"timeout": map[string]any{
				"type":        "integer",
				"description": "Timeout in seconds (default 60, max 300).",
			},
		},
		Required: []string{"command"},
	}
}

// checkCommand returns a denial message when the command is not permitted,
// or empty when it is.
func checkCommand(command string) string {
	for _, meta := range shellMetachars {
		if strings.Contains(command, meta) {
			return fmt.Sprintf("Security error: command contains %q; pipes, redirection and chaining are not allowed", meta)
		}
	}

	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "Security error: empty command"
	}

	subs, ok := allowedCommands[fields[0]]
	if !ok {
		return fmt.Sprintf("Security error: command %q is not in the allowlist", fields[0])
	}
	if len(subs) > 0 {
		if len(fields) < 2 {
			return fmt.Sprintf("Security error: %s requires one of: %s", fields[0], strings.Join(subs, ", "))
		}
		for _, s := range subs {
			if fields[1] == s {
				return ""
			}
		}
		return fmt.Sprintf("Security error: %s %s is not allowed (permitted: %s)", fields[0], fields[1], strings.Join(subs, ", "))
	}
	return ""
}

func (t *runCommandTool) Call(ctx context.Context, input json.RawMessage) (string, error) {
	var in runCommandInput
	if err := unmarshalInput(input, &in); err != nil {
		return "", err
	}

	if denial := checkCommand(in.Command); denial != "" {
		return denial, nil
	}

	if in.Workdir != "" {
		info, err := os.Stat(in.Workdir)
		if err != nil || !info.IsDir() {
			return fmt.Sprintf("Error: workdir %s is not a directory", in.Workdir), nil
		}
	}

	timeout := t.timeout
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	if in.Timeout > 0 {
		timeout = time.Duration(in.Timeout) * time.Second
		if timeout > maxCommandTimeout {
			timeout = maxCommandTimeout
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fields := strings.Fields(in.Command)
	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Dir = in.Workdir

	out, err := cmd.CombinedOutput()
	output := string(out)
	if len(output) > maxCommandOutput {
		output = output[:maxCommandOutput] + "\n... (output truncated)"
	}

	switch {
	case ctx.Err() == context.DeadlineExceeded:
		return fmt.Sprintf("Error: command timed out after %s", timeout), nil
	case err != nil:
		return fmt.Sprintf("Command failed: %v\n\n%s", err, output), nil
	case output == "":
		return "Command completed with no output.", nil
	}
	return output, nil
}

// analyzeCodeTool reports the structure of a code snippet without running it.
type analyzeCodeTool struct{}

type analyzeCodeInput struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// languagePatterns holds the declaration patterns probed per language.
var languagePatterns = map[string]map[string]*regexp.Regexp{
	"python": {
		"functions":  regexp.MustCompile(`(?m)^\s*def\s+(\w+)`),
		"classes":    regexp.MustCompile(`(?m)^\s*class\s+(\w+)`),
		"imports":    regexp.MustCompile(`(?m)^\s*(?:import|from)\s+([\w.]+)`),
		"decorators": regexp.MustCompile(`(?m)^\s*@([\w.]+)`),
	},
	"javascript": {
		"functions": regexp.MustCompile(`(?m)(?:function\s+(\w+)|(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:function|\())`),
		"classes":   regexp.MustCompile(`(?m)^\s*(?:export\s+(?:default\s+)?)?class\s+(\w+)`),
		"imports":   regexp.MustCompile(`(?m)^\s*import\s+.*?from\s+['"]([^'"]+)['"]`),
		"exports":   regexp.MustCompile(`(?m)^\s*export\s+(?:default\s+)?(?:async\s+)?(?:function\s+|class\s+|const\s+|let\s+|var\s+)?(\w+)`),
	},
	"go": {
		"functions": regexp.MustCompile(`(?m)^func\s+(?:\([^)]+\)\s+)?(\w+)`),
		"types":     regexp.MustCompile(`(?m)^type\s+(\w+)`),
		"imports":   regexp.MustCompile(`(?m)^\s*"([^"]+)"`),
	},
}

// analysisKinds fixes the section order of the report.
var analysisKinds = []string{"functions", "classes", "types", "imports", "decorators", "exports"}

// normalizeLanguage maps language aliases to an analyzer key.
func normalizeLanguage(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "python", "py":
		return "python"
	case "javascript", "js", "jsx", "typescript", "ts", "tsx":
		return "javascript"
	case "go", "golang":
		return "go"
	}
	return ""
}

func (t *analyzeCodeTool) Name() string { return "analyze_code" }

func (t *analyzeCodeTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        t.Name(),
		Description: "Statically analyze the structure of a code snippet: functions, classes or types, imports, decorators and exports. Supports Python, JavaScript/TypeScript and Go.",
		Properties: map[string]any{
			"code": map[string]any{
				"type":        "string",
				"description": "The source code to analyze.",
			},
			"language": map[string]any{
				"type":        "string",
				"description": "Language of the code: python, javascript, typescript, or go.",
			},
		},
		Required: []string{"code", "language"},
	}
}

func (t *analyzeCodeTool) Call(_ context.Context, input json.RawMessage) (string, error) {
	var in analyzeCodeInput
	if err := unmarshalInput(input, &in); err != nil {
		return "", err
	}

	lang := normalizeLanguage(in.Language)
	if lang == "" {
		return fmt.Sprintf("Error: unsupported language for analysis: %s", in.Language), nil
	}
	if in.Code == "" {
		return "Error: no code provided", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Code analysis (%s)\n\n", lang)
	fmt.Fprintf(&b, "Lines: %d, Characters: %d\n", strings.Count(in.Code, "\n")+1, len(in.Code))

	for _, kind := range analysisKinds {
		re, ok := languagePatterns[lang][kind]
		if !ok {
			continue
		}
		names := matchNames(re, in.Code)
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s (%d)\n", strings.ToUpper(kind[:1])+kind[1:], len(names))
		for _, n := range names {
			fmt.Fprintf(&b, "- %s\n", n)
		}
	}
	return b.String(), nil
}

// matchNames collects the first non-empty capture group of every match.
func matchNames(re *regexp.Regexp, content string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		for _, g := range m[1:] {
			if g == "" || seen[g] {
				continue
			}
			seen[g] = true
			names = append(names, g)
			break
		}
	}
	return names
}
