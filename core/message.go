package core

import "encoding/json"

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleSystem marks behavioral instructions supplied at session start.
	RoleSystem Role = "system"
	// RoleUser marks messages authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks model output, including tool call requests and
	// synthetic grounding entries.
	RoleAssistant Role = "assistant"
	// RoleTool marks tool execution results fed back to the model.
	RoleTool Role = "tool"
)

// ToolCallRequest is a model-issued request to invoke a named tool with
// serialized arguments. Zero or more may appear in one model response.
type ToolCallRequest struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"` // JSON object of arguments
}

// ToolResult is the outcome of executing one ToolCallRequest. It is always
// paired 1:1 with the request that produced it via ToolCallID.
type ToolResult struct {
	ToolCallID string `json:"tool_call_id"`
	Content    string `json:"content"`
	Failed     bool   `json:"failed,omitempty"` // true when the handler or argument parsing failed
}

// Message is an immutable conversation record. ToolCalls is populated only on
// assistant messages that request tool invocations; ToolCallID only on
// tool-role messages, linking the result back to the requesting call.
type Message struct {
	Role       Role              `json:"role"`
	Content    string            `json:"content,omitempty"`
	ToolCalls  []ToolCallRequest `json:"tool_calls,omitempty"`
	ToolCallID string            `json:"tool_call_id,omitempty"`
}

// NewSystemMessage builds a system-role message.
func NewSystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// NewUserMessage builds a user-role message.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// NewAssistantMessage builds a plain assistant text message.
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// NewToolRequestMessage builds the assistant message recording a batch of
// tool call requests, optionally with accompanying text.
func NewToolRequestMessage(text string, calls []ToolCallRequest) Message {
	return Message{Role: RoleAssistant, Content: text, ToolCalls: calls}
}

// NewToolResultMessage builds the tool-role message carrying one result.
func NewToolResultMessage(res ToolResult) Message {
	return Message{Role: RoleTool, Content: res.Content, ToolCallID: res.ToolCallID}
}

// RequestsTool reports whether the message carries a tool call with the given id.
func (m Message) RequestsTool(toolCallID string) bool {
	if m.Role != RoleAssistant {
		return false
	}
	for _, tc := range m.ToolCalls {
		if tc.ID == toolCallID {
			return true
		}
	}
	return false
}

// RetrievalMatch is a grounding passage returned by a similarity search.
// Matches are turn-scoped and never persisted.
type RetrievalMatch struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Score    float64        `json:"score"` // similarity, higher = more relevant
}

// ModelResponse is the classified outcome of one model invocation. Concrete
// variants implement the unexported marker enabling a closed set.
type ModelResponse interface{ isModelResponse() }

// FinalAnswer is a model response carrying the answer text for the turn.
type FinalAnswer struct {
	Text string
}

func (FinalAnswer) isModelResponse() {}

// ToolCallRequested is a model response asking for tool invocations before it
// can answer. Text carries any free text that accompanied the request.
type ToolCallRequested struct {
	Calls []ToolCallRequest
	Text  string
}

func (ToolCallRequested) isModelResponse() {}
