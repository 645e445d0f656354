package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cockroachdb/errors"

	skilleterrors "github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/logging"
)

// apiKeyEnv is the environment variable holding the Anthropic API key.
const apiKeyEnv = "ANTHROPIC_API_KEY"

// Anthropic implements Model on the official Anthropic SDK.
type Anthropic struct {
	client anthropic.Client
	model  string
	logger *slog.Logger
}

// NewAnthropic creates an Anthropic model client. The API key is read
// from ANTHROPIC_API_KEY.
func NewAnthropic(model string, logger *slog.Logger) (*Anthropic, error) {
	key := os.Getenv(apiKeyEnv)
	if key == "" {
		return nil, skilleterrors.ErrMissingAPIKey
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(key)),
		model:  model,
		logger: logger,
	}, nil
}

// Name returns the configured model identifier.
func (a *Anthropic) Name() string {
	return a.model
}

// Complete sends one Messages API request.
func (a *Anthropic) Complete(ctx context.Context, req *Request) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(req.MaxTokens),
		Messages:  toMessageParams(req.Messages),
		Tools:     toToolParams(req.Tools),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	a.logger.Log(ctx, logging.LevelTrace, "model request",
		"model", a.model, "messages", len(req.Messages), "tools", len(req.Tools))

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "anthropic messages request")
	}

	resp := &Response{
		StopReason: string(msg.StopReason),
		Usage: Usage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
	}
	for _, block := range msg.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			resp.Text += b.Text
		case anthropic.ToolUseBlock:
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{
				ID:    b.ID,
				Name:  b.Name,
				Input: json.RawMessage(b.Input),
			})
		}
	}

	a.logger.Log(ctx, logging.LevelTrace, "model response",
		"stop", resp.StopReason,
		"tool_calls", len(resp.ToolCalls),
		"output_tokens", resp.Usage.OutputTokens)

	return resp, nil
}

// toMessageParams converts conversation history to SDK message params.
func toMessageParams(messages []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(m.Blocks))
		for _, b := range m.Blocks {
			switch b.Type {
			case BlockText:
				blocks = append(blocks, anthropic.NewTextBlock(b.Text))
			case BlockToolUse:
				blocks = append(blocks, anthropic.NewToolUseBlock(b.ToolID, b.ToolInput, b.ToolName))
			case BlockToolResult:
				blocks = append(blocks, anthropic.NewToolResultBlock(b.ToolID, b.ToolResult, b.IsError))
			}
		}
		switch m.Role {
		case RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		default:
			out = append(out, anthropic.NewUserMessage(blocks...))
		}
	}
	return out
}

// toToolParams converts tool specs to SDK tool params.
func toToolParams(tools []ToolSpec) []anthropic.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		out = append(out, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name,
				Description: anthropic.String(t.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: t.Properties,
					Required:   t.Required,
				},
			},
		})
	}
	return out
}
