package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation_AppendAndSnapshotRoundTrip(t *testing.T) {
	conv := NewConversation()

	msgs := []Message{
		NewSystemMessage("You are a helpful hotel concierge."),
		NewUserMessage("Do you have a pool?"),
		NewAssistantMessage("Yes, open 8am-8pm."),
		NewUserMessage("And a sauna?"),
		NewAssistantMessage("Yes, next to the pool."),
	}

	for _, m := range msgs {
		require.NoError(t, conv.Append(m))
	}

	snap := conv.Snapshot()
	require.Len(t, snap, len(msgs))
	for i := range msgs {
		assert.Equal(t, msgs[i], snap[i])
	}
}

func TestConversation_SnapshotIsDefensiveCopy(t *testing.T) {
	conv := NewConversation()
	require.NoError(t, conv.Append(NewUserMessage("hi")))

	snap := conv.Snapshot()
	snap[0].Content = "mutated"

	assert.Equal(t, "hi", conv.Snapshot()[0].Content)
}

func TestConversation_ToolResultRequiresMatchingRequest(t *testing.T) {
	conv := NewConversation()
	require.NoError(t, conv.Append(NewUserMessage("what time is it")))
	require.NoError(t, conv.Append(NewToolRequestMessage("", []ToolCallRequest{
		{ID: "call_1", Name: "get_date_time", Arguments: json.RawMessage(`{}`)},
	})))

	err := conv.Append(NewToolResultMessage(ToolResult{ToolCallID: "call_1", Content: "2026-09-01T10:00:00Z"}))
	assert.NoError(t, err)

	err = conv.Append(NewToolResultMessage(ToolResult{ToolCallID: "call_other", Content: "x"}))
	assert.ErrorIs(t, err, ErrInvalidSequence)
}

func TestConversation_ToolResultWithoutIDFails(t *testing.T) {
	conv := NewConversation()
	err := conv.Append(Message{Role: RoleTool, Content: "orphan"})
	assert.ErrorIs(t, err, ErrInvalidSequence)
}

func TestConversation_ToolResultBeforeAnyRequestFails(t *testing.T) {
	conv := NewConversation()
	err := conv.Append(NewToolResultMessage(ToolResult{ToolCallID: "call_1", Content: "x"}))
	assert.ErrorIs(t, err, ErrInvalidSequence)
}

func TestConversation_LenTracksAppends(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < 7; i++ {
		require.NoError(t, conv.Append(NewUserMessage(fmt.Sprintf("msg %d", i))))
	}
	assert.Equal(t, 7, conv.Len())
}

func TestTransportError_Unwrap(t *testing.T) {
	underlying := errors.New("rate limited")
	err := NewTransportError("openai", underlying)
	assert.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "openai")
}
