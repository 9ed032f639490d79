// Package openai provides a model.Transport implementation using the OpenAI
// Chat Completions API (including function/tool calling). It adapts the
// conversation message log into the SDK's message format and back.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hotelkit/concierge/core"
	"github.com/hotelkit/concierge/model"
	"github.com/openai/openai-go"
)

// Options configure the OpenAI transport.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Transport wraps the OpenAI Chat Completions API behind the generic
// model.Transport interface.
type Transport struct {
	client *openai.Client
	opts   Options
}

// NewTransport creates a new OpenAI transport using the official client.
func NewTransport(optFns ...func(o *Options)) *Transport {
	client := openai.NewClient()
	return NewTransportFromClient(&client, optFns...)
}

// NewTransportFromClient creates a new OpenAI transport from an existing client.
func NewTransportFromClient(client *openai.Client, optFns ...func(o *Options)) *Transport {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Transport{client: client, opts: opts}
}

// Complete implements model.Transport. Tool choice is left at the provider
// default, which matches the auto policy: the model decides whether to call
// tools from the supplied catalog.
func (t *Transport) Complete(
	ctx context.Context,
	messages []core.Message,
	tools []model.ToolDefinition,
	_ model.ToolChoice,
) (*model.Completion, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(messages),
		Model:               t.opts.Model,
		Temperature:         openai.Float(t.opts.Temperature),
		MaxCompletionTokens: openai.Int(t.opts.MaxCompletionTokens),
	}
	if len(tools) > 0 {
		params.Tools = buildTools(tools)
	}

	resp, err := t.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	ch0 := resp.Choices[0]
	completion := &model.Completion{
		Text:         ch0.Message.Content,
		FinishReason: ch0.FinishReason,
	}
	for _, tc := range ch0.Message.ToolCalls {
		completion.ToolCalls = append(completion.ToolCalls, core.ToolCallRequest{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: json.RawMessage(tc.Function.Arguments),
		})
	}
	return completion, nil
}

// buildMessages converts the conversation log into OpenAI chat messages. The
// log already orders tool results directly after the assistant message that
// requested them, so the mapping is positional.
func buildMessages(messages []core.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case core.RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case core.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(m.Content))
				continue
			}
			toolCalls := make([]openai.ChatCompletionMessageToolCallParam, len(m.ToolCalls))
			for i, tc := range m.ToolCalls {
				toolCalls[i] = openai.ChatCompletionMessageToolCallParam{
					ID:   tc.ID,
					Type: "function",
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      tc.Name,
						Arguments: string(tc.Arguments),
					},
				}
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Role:      "assistant",
					ToolCalls: toolCalls,
				},
			})
		case core.RoleTool:
			out = append(out, openai.ToolMessage(m.Content, m.ToolCallID))
		default:
			if m.Content != "" {
				out = append(out, openai.UserMessage(m.Content))
			}
		}
	}
	return out
}

// buildTools converts the static tool catalog into OpenAI tool params.
func buildTools(tools []model.ToolDefinition) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, len(tools))
	for i, td := range tools {
		out[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        td.Name,
				Description: openai.String(td.Description),
				Parameters:  td.Parameters,
			},
		}
	}
	return out
}

// Info returns metadata describing this OpenAI transport.
func (t *Transport) Info() model.Info {
	return model.Info{Name: t.opts.Model, Provider: "openai"}
}
