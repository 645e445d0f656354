package agent

import (
	"context"
	"log/slog"

	"github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/llm"
	"github.com/skillet-ai/skillet/internal/logging"
	"github.com/skillet-ai/skillet/internal/session"
)

// DefaultMaxSteps caps the model/tool round trips for one query.
const DefaultMaxSteps = 16

// EventKind identifies what a streamed Event reports.
type EventKind string

const (
	// EventText is assistant text produced during a step.
	EventText EventKind = "text"
	// EventToolCall is emitted before a tool runs.
	EventToolCall EventKind = "tool_call"
	// EventToolResult is emitted after a tool returns.
	EventToolResult EventKind = "tool_result"
)

// Event is a progress notification from a running query.
type Event struct {
	Kind EventKind
	// Agent is the name of the agent the event belongs to.
	Agent string
	// Text carries assistant text for EventText.
	Text string
	// Tool and Input describe the call for tool events.
	Tool  string
	Input string
	// Result carries the tool output for EventToolResult.
	Result string
}

// EventFunc receives streamed events. A nil EventFunc disables streaming.
type EventFunc func(Event)

// Result is the outcome of one query.
type Result struct {
	// Text is the final assistant answer.
	Text string
	// Steps is the number of model completions made.
	Steps int
	// Usage is the total token consumption.
	Usage llm.Usage
}

// Runner executes agents against a model.
type Runner struct {
	model    llm.Model
	sessions session.Store
	logger   *slog.Logger

	// MaxSteps bounds model/tool round trips per query. Zero means
	// DefaultMaxSteps.
	MaxSteps int

	// MaxTokens is passed through to each completion.
	MaxTokens int
}

// NewRunner creates a Runner. A nil logger discards logs.
func NewRunner(model llm.Model, sessions session.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Runner{
		model:    model,
		sessions: sessions,
		logger:   logger,
		MaxSteps: DefaultMaxSteps,
	}
}

// Run answers one user query in the given session, calling tools as the
// model requests until it produces a final answer. The session history
// is extended with the full exchange.
func (r *Runner) Run(ctx context.Context, ag *Agent, sessionID, query string, onEvent EventFunc) (*Result, error) {
	sess, err := r.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	messages := append(sess.Messages, llm.TextMessage(llm.RoleUser, query))
	var appended []llm.Message
	appended = append(appended, llm.TextMessage(llm.RoleUser, query))

	maxSteps := r.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	result := &Result{}
	for step := 0; step < maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "query cancelled")
		}

		resp, err := r.model.Complete(ctx, &llm.Request{
			System:    ag.Instruction,
			Messages:  messages,
			Tools:     ag.Tools.Specs(),
			MaxTokens: r.MaxTokens,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "agent %s", ag.Name)
		}
		result.Steps++
		result.Usage.Add(resp.Usage)

		r.logger.Debug("model step",
			"agent", ag.Name,
			"step", result.Steps,
			"stop_reason", resp.StopReason,
			"tool_calls", len(resp.ToolCalls),
		)

		if resp.Text != "" && onEvent != nil {
			onEvent(Event{Kind: EventText, Agent: ag.Name, Text: resp.Text})
		}

		assistant := resp.Message()
		messages = append(messages, assistant)
		appended = append(appended, assistant)

		if resp.StopReason != llm.StopToolUse || len(resp.ToolCalls) == 0 {
			result.Text = resp.Text
			if err := r.sessions.Append(sessionID, appended...); err != nil {
				return nil, err
			}
			return result, nil
		}

		results := make([]llm.Block, 0, len(resp.ToolCalls))
		for _, call := range resp.ToolCalls {
			results = append(results, r.callTool(ctx, ag, call, onEvent))
		}
		toolMsg := llm.ToolResultMessage(results...)
		messages = append(messages, toolMsg)
		appended = append(appended, toolMsg)
	}

	return nil, errors.Wrapf(errors.ErrMaxStepsExceeded, "agent %s after %d steps", ag.Name, maxSteps)
}

// callTool dispatches one tool call and converts every failure into a
// result block the model can react to.
func (r *Runner) callTool(ctx context.Context, ag *Agent, call llm.ToolCall, onEvent EventFunc) llm.Block {
	if onEvent != nil {
		onEvent(Event{Kind: EventToolCall, Agent: ag.Name, Tool: call.Name, Input: string(call.Input)})
	}

	t, ok := ag.Tools.Get(call.Name)
	if !ok {
		r.logger.Warn("model requested unknown tool", "agent", ag.Name, "tool", call.Name)
		return llm.ToolResult(call.ID, "Error: unknown tool "+call.Name, true)
	}

	r.logger.Log(ctx, logging.LevelTrace, "tool call", "agent", ag.Name, "tool", call.Name, "input", string(call.Input))

	out, err := t.Call(ctx, call.Input)
	if err != nil {
		r.logger.Warn("tool failed", "agent", ag.Name, "tool", call.Name, "error", err)
		return llm.ToolResult(call.ID, "Error: "+err.Error(), true)
	}

	if onEvent != nil {
		onEvent(Event{Kind: EventToolResult, Agent: ag.Name, Tool: call.Name, Result: out})
	}
	return llm.ToolResult(call.ID, out, false)
}
