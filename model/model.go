package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/hotelkit/concierge/core"
)

// ToolDefinition declaratively exposes a callable tool to the model.
// Parameters is a JSON Schema object (draft agnostic, minimal subset expected).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"` // JSON Schema
}

// ToolChoice controls how the model may use a supplied tool catalog.
type ToolChoice string

// ToolChoiceAuto lets the model decide whether to call tools. It is the only
// policy in this design: tool use is advisory, never forced or disabled while
// a catalog is supplied.
const ToolChoiceAuto ToolChoice = "auto"

// FinishReasonToolCalls is the normalized termination signal indicating the
// model wants tools invoked before answering. Provider bindings map their
// native stop reasons onto it.
const FinishReasonToolCalls = "tool_calls"

// Completion is the raw, provider-normalized output of one model call.
type Completion struct {
	Text         string
	ToolCalls    []core.ToolCallRequest
	FinishReason string // "stop", "tool_calls", "length", ...
}

// Info contains metadata about a transport implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", ...
}

// Transport is the minimal interface provider bindings implement. Retry and
// backoff policy belongs to implementations; callers see failures as-is.
type Transport interface {
	Complete(ctx context.Context, messages []core.Message, tools []ToolDefinition, choice ToolChoice) (*Completion, error)

	// Info returns information about the transport implementation.
	Info() Info
}

// MockTransport is a lightweight scripted Transport useful for tests and
// examples. Completions are consumed in order; once the script is exhausted
// it echoes the last user message. It records every call for inspection.
type MockTransport struct {
	mu     sync.Mutex
	script []scripted
	calls  []MockCall
}

type scripted struct {
	completion *Completion
	err        error
}

// MockCall captures the arguments of one Complete invocation.
type MockCall struct {
	Messages []core.Message
	Tools    []ToolDefinition
	Choice   ToolChoice
}

// NewMockTransport constructs an empty MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// QueueCompletion appends a canned completion to the script.
func (m *MockTransport) QueueCompletion(c *Completion) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scripted{completion: c})
	return m
}

// QueueAnswer appends a plain final-answer completion to the script.
func (m *MockTransport) QueueAnswer(text string) *MockTransport {
	return m.QueueCompletion(&Completion{Text: text, FinishReason: "stop"})
}

// QueueToolCalls appends a completion requesting the given tool calls.
func (m *MockTransport) QueueToolCalls(text string, calls ...core.ToolCallRequest) *MockTransport {
	return m.QueueCompletion(&Completion{Text: text, ToolCalls: calls, FinishReason: FinishReasonToolCalls})
}

// QueueError appends a transport failure to the script.
func (m *MockTransport) QueueError(err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scripted{err: err})
	return m
}

// Calls returns a copy of the recorded invocations.
func (m *MockTransport) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Complete implements Transport.
func (m *MockTransport) Complete(ctx context.Context, messages []core.Message, tools []ToolDefinition, choice ToolChoice) (*Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]core.Message, len(messages))
	copy(snapshot, messages)
	m.calls = append(m.calls, MockCall{Messages: snapshot, Tools: tools, Choice: choice})

	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		if next.err != nil {
			return nil, next.err
		}
		return next.completion, nil
	}

	var lastUser string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == core.RoleUser {
			lastUser = messages[i].Content
			break
		}
	}
	return &Completion{Text: fmt.Sprintf("Mock response to: %s", lastUser), FinishReason: "stop"}, nil
}

// Info implements Transport.
func (m *MockTransport) Info() Info {
	return Info{Name: "mock", Provider: "mock"}
}
