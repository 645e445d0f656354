// Package tool defines the tools agents can invoke and a registry for
// dispatching model tool calls.
//
// Tools distinguish two failure kinds: conditions the model should see
// and react to (missing file, denied command, unknown skill) come back
// as the result string; only infrastructure failures return an error.
package tool

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	skilleterrors "github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/llm"
)

// Tool is a capability an agent can invoke.
type Tool interface {
	// Name is the identifier the model calls the tool by.
	Name() string

	// Spec describes the tool to the model.
	Spec() llm.ToolSpec

	// Call executes the tool with the model-provided JSON input.
	Call(ctx context.Context, input json.RawMessage) (string, error)
}

// Registry holds tools in registration order.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates a Registry with the given tools.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool. Registering two tools under one name is an error.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if _, exists := r.tools[name]; exists {
		return errors.Wrapf(skilleterrors.ErrDuplicateTool, "%q", name)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Get returns the tool with the given name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// All returns the tools in registration order.
func (r *Registry) All() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Specs returns the tool specs in registration order, for the model.
func (r *Registry) Specs() []llm.ToolSpec {
	tools := r.All()
	specs := make([]llm.ToolSpec, len(tools))
	for i, t := range tools {
		specs[i] = t.Spec()
	}
	return specs
}

// unmarshalInput decodes tool input, tolerating empty input.
func unmarshalInput(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return nil
	}
	if err := json.Unmarshal(input, v); err != nil {
		return errors.Wrap(err, "decoding tool input")
	}
	return nil
}
