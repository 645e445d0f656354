package agent

import (
	"github.com/skillet-ai/skillet/internal/session"
	"github.com/skillet-ai/skillet/internal/skill"
	"github.com/skillet-ai/skillet/internal/tool"
)

const coordinatorInstruction = `You are a coordinator that answers by delegating to specialist agents.

Specialists:
- ask_knowledge: questions a curated skill library can answer.
- ask_code: reading and analyzing source code structure.
- ask_files: browsing directories and reading or writing files.

Each loaded skill is also available as its own expert tool named
ask_<skill>. Prefer the matching expert when a question falls squarely
on one skill.

Delegate each part of the user's request to the best specialist, then
synthesize their answers into one response. Delegate rather than guess;
if no specialist fits, answer directly.`

const knowledgeInstruction = `You are a knowledge specialist. Use the skill tools to find and read
skills relevant to the question, then answer strictly from their
content. If no skill covers the question, say so.`

const codeInstruction = `You are a code analysis specialist. Use analyze_code to inspect source
structure and read_file to examine code, then report findings
concisely.`

const filesInstruction = `You are a filesystem specialist. Use list_dir, read_file and write_file
to carry out the requested file operations and report what you did.`

// NewCoordinator builds the team-mode root agent: a coordinator whose
// only tools are three specialist agents wrapped with AsTool.
func NewCoordinator(lib *skill.Library, runner *Runner, store session.Store) (*Agent, error) {
	knowledgeReg, err := tool.NewRegistry(tool.SkillTools(lib)...)
	if err != nil {
		return nil, err
	}
	knowledge := New("knowledge", "Answers questions from the curated skill library.", withInventory(knowledgeInstruction, lib), knowledgeReg)

	codeTools := []tool.Tool{}
	for _, t := range tool.FileTools() {
		if t.Name() == "read_file" {
			codeTools = append(codeTools, t)
		}
	}
	codeTools = append(codeTools, tool.ExecTools()...)
	codeReg, err := tool.NewRegistry(codeTools...)
	if err != nil {
		return nil, err
	}
	code := New("code", "Reads and analyzes source code structure.", codeInstruction, codeReg)

	filesReg, err := tool.NewRegistry(tool.FileTools()...)
	if err != nil {
		return nil, err
	}
	files := New("files", "Browses directories and reads or writes files.", filesInstruction, filesReg)

	rootTools := []tool.Tool{
		AsTool(knowledge, runner, store),
		AsTool(code, runner, store),
		AsTool(files, runner, store),
	}

	// One lazily built expert per loaded skill. A skill named after a
	// specialist would collide; the specialist wins.
	reserved := map[string]bool{"ask_knowledge": true, "ask_code": true, "ask_files": true}
	experts := NewExpertCache()
	for _, s := range lib.List() {
		et := experts.Tool(s, runner, store)
		if reserved[et.Name()] {
			continue
		}
		rootTools = append(rootTools, et)
	}

	rootReg, err := tool.NewRegistry(rootTools...)
	if err != nil {
		return nil, err
	}
	return New("coordinator", "Routes requests to specialist agents.", coordinatorInstruction, rootReg), nil
}
