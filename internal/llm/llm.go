// Package llm defines the model abstraction the agent runner talks to,
// plus the Anthropic implementation. The interface keeps the runner
// testable with a scripted fake; nothing above this package imports the
// SDK directly.
package llm

import "encoding/json"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// BlockType identifies the kind of content in a Block.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
)

// StopToolUse is the stop reason indicating the model wants tool results
// before continuing.
const StopToolUse = "tool_use"

// Block is one content block within a message.
type Block struct {
	Type BlockType

	// Text is set for BlockText.
	Text string

	// Tool call fields, set for BlockToolUse.
	ToolID    string
	ToolName  string
	ToolInput json.RawMessage

	// Tool result fields, set for BlockToolResult. ToolID links the
	// result to the originating call.
	ToolResult string
	IsError    bool
}

// Message is one conversation turn.
type Message struct {
	Role   Role
	Blocks []Block
}

// TextMessage builds a single-text-block message.
func TextMessage(role Role, text string) Message {
	return Message{Role: role, Blocks: []Block{{Type: BlockText, Text: text}}}
}

// ToolResultMessage builds the user-role message carrying tool results
// back to the model.
func ToolResultMessage(results ...Block) Message {
	return Message{Role: RoleUser, Blocks: results}
}

// ToolResult builds a tool result block for a call ID.
func ToolResult(toolID, content string, isError bool) Block {
	return Block{Type: BlockToolResult, ToolID: toolID, ToolResult: content, IsError: isError}
}

// ToolSpec describes a tool offered to the model.
type ToolSpec struct {
	Name        string
	Description string

	// Properties is the JSON schema "properties" object.
	Properties map[string]any

	// Required lists required property names.
	Required []string
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// Usage reports token consumption for one completion.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Add accumulates usage across completions.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// Request is one completion request.
type Request struct {
	System    string
	Messages  []Message
	Tools     []ToolSpec
	MaxTokens int
}

// Response is the model's reply.
type Response struct {
	// Text is the concatenation of all text blocks.
	Text string

	// ToolCalls lists requested tool invocations, in order.
	ToolCalls []ToolCall

	// StopReason is the provider stop reason (e.g. "end_turn", "tool_use").
	StopReason string

	Usage Usage
}

// Message converts the response into the assistant message to append to
// the conversation history.
func (r *Response) Message() Message {
	var blocks []Block
	if r.Text != "" {
		blocks = append(blocks, Block{Type: BlockText, Text: r.Text})
	}
	for _, tc := range r.ToolCalls {
		blocks = append(blocks, Block{
			Type:      BlockToolUse,
			ToolID:    tc.ID,
			ToolName:  tc.Name,
			ToolInput: tc.Input,
		})
	}
	return Message{Role: RoleAssistant, Blocks: blocks}
}
