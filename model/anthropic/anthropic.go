// Package anthropic provides a model.Transport implementation using the
// Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
	"github.com/hotelkit/concierge/core"
	"github.com/hotelkit/concierge/model"
)

// Options configure the Anthropic transport (model id, temperature, max
// tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Transport wraps the Anthropic Messages API behind the generic
// model.Transport interface.
type Transport struct {
	client *anthropic.Client
	opts   Options
}

// WithModel sets the model by its string id, sparing callers the SDK type.
func WithModel(id string) func(o *Options) {
	return func(o *Options) { o.Model = anthropic.Model(id) }
}

// NewTransport creates a new Anthropic transport using the official client.
func NewTransport(optFns ...func(o *Options)) *Transport {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Transport{client: &client, opts: opts}
}

// NewTransportFromClient creates a new Anthropic transport from an existing client.
func NewTransportFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Transport {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Transport{client: client, opts: opts}
}

// Complete implements model.Transport. Anthropic's default tool choice is
// auto, matching the only policy in this design.
func (t *Transport) Complete(
	ctx context.Context,
	messages []core.Message,
	tools []model.ToolDefinition,
	_ model.ToolChoice,
) (*model.Completion, error) {
	params := anthropic.MessageNewParams{
		Model:       t.opts.Model,
		Messages:    buildMessages(messages),
		MaxTokens:   t.opts.MaxTokens,
		Temperature: anthropic.Float(t.opts.Temperature),
	}
	if system := extractSystem(messages); len(system) > 0 {
		params.System = system
	}
	if len(tools) > 0 {
		params.Tools = buildTools(tools)
	}

	resp, err := t.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	completion := &model.Completion{FinishReason: normalizeStopReason(string(resp.StopReason))}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			completion.Text += block.AsText().Text
		case "tool_use":
			toolBlock := block.AsToolUse()
			args := json.RawMessage(`{}`)
			if toolBlock.Input != nil {
				if raw, err := json.Marshal(toolBlock.Input); err == nil {
					args = raw
				}
			}
			completion.ToolCalls = append(completion.ToolCalls, core.ToolCallRequest{
				ID:        toolBlock.ID,
				Name:      toolBlock.Name,
				Arguments: args,
			})
		}
	}
	return completion, nil
}

// normalizeStopReason maps Anthropic stop reasons onto the normalized finish
// reasons the gateway classifies on.
func normalizeStopReason(reason string) string {
	switch reason {
	case "tool_use":
		return model.FinishReasonToolCalls
	case "end_turn", "":
		return "stop"
	default:
		return reason
	}
}

// buildMessages converts the conversation log to Anthropic message params.
// Tool results must be sent as tool_result blocks inside a user message that
// follows the assistant tool_use message; consecutive tool-role entries are
// folded into one such message.
func buildMessages(messages []core.Message) []anthropic.MessageParam {
	var out []anthropic.MessageParam
	var pendingResults []anthropic.ContentBlockParamUnion

	flushResults := func() {
		if len(pendingResults) > 0 {
			out = append(out, anthropic.NewUserMessage(pendingResults...))
			pendingResults = nil
		}
	}

	for _, m := range messages {
		if m.Role == core.RoleTool {
			pendingResults = append(pendingResults, anthropic.NewToolResultBlock(m.ToolCallID, m.Content, false))
			continue
		}
		flushResults()

		switch m.Role {
		case core.RoleSystem:
			continue // handled via params.System
		case core.RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case core.RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, tc := range m.ToolCalls {
				var input any
				if len(tc.Arguments) > 0 {
					if err := json.Unmarshal(tc.Arguments, &input); err != nil {
						input = string(tc.Arguments)
					}
				}
				blocks = append(blocks, anthropic.NewToolUseBlock(tc.ID, input, tc.Name))
			}
			if len(blocks) > 0 {
				out = append(out, anthropic.NewAssistantMessage(blocks...))
			}
		default:
			if m.Content != "" {
				out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
			}
		}
	}
	flushResults()
	return out
}

// extractSystem collects system messages as system prompt blocks.
func extractSystem(messages []core.Message) []anthropic.TextBlockParam {
	var blocks []anthropic.TextBlockParam
	for _, m := range messages {
		if m.Role == core.RoleSystem && m.Content != "" {
			blocks = append(blocks, anthropic.TextBlockParam{Text: m.Content})
		}
	}
	return blocks
}

// buildTools converts the tool catalog to Anthropic tool params.
func buildTools(tools []model.ToolDefinition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, len(tools))
	for i, td := range tools {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}
		if td.Parameters != nil {
			if properties, ok := td.Parameters["properties"]; ok {
				inputSchema.Properties = properties
			}
			if required, ok := td.Parameters["required"]; ok {
				inputSchema.Required = requiredStrings(required)
			}
		}
		out[i] = anthropic.ToolUnionParamOfTool(inputSchema, td.Name)
	}
	return out
}

// requiredStrings coerces a schema "required" entry into []string; JSON
// decoded schemas surface it as []any.
func requiredStrings(v any) []string {
	switch req := v.(type) {
	case []string:
		return req
	case []any:
		out := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Info returns metadata describing this Anthropic transport.
func (t *Transport) Info() model.Info {
	return model.Info{Name: string(t.opts.Model), Provider: "anthropic"}
}
