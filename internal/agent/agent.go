// Package agent wires a model, a tool registry, and an instruction into
// an agent, and runs the tool-use loop that answers a query.
package agent

import (
	"github.com/skillet-ai/skillet/internal/tool"
)

// Agent is a named instruction plus the tools it may call.
type Agent struct {
	// Name identifies the agent in logs and, when wrapped as a tool,
	// to the parent agent.
	Name string

	// Description tells a parent agent when to delegate here.
	Description string

	// Instruction is the system prompt.
	Instruction string

	// Tools the agent may invoke.
	Tools *tool.Registry
}

// New creates an agent. The registry may be empty but not nil.
func New(name, description, instruction string, tools *tool.Registry) *Agent {
	return &Agent{
		Name:        name,
		Description: description,
		Instruction: instruction,
		Tools:       tools,
	}
}
