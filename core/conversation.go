package core

import (
	"fmt"
	"sync"
)

// Conversation is the append-only ordered message log for one session. Order
// is semantically significant: the log is replayed verbatim to the model and
// is the single source of truth for what the model has seen.
//
// Contract:
//   - Append validates the tool-sequencing invariant: a tool message must
//     appear strictly after the assistant message that requested it and must
//     carry the matching tool call id
//   - No message is ever removed or reordered
//   - Snapshot returns a defensive copy to avoid external mutation
//
// A Conversation is owned by exactly one session. It is safe for concurrent
// access, though turns on the same session are serialized above this layer.
type Conversation struct {
	mu       sync.RWMutex
	messages []Message
}

// NewConversation creates an empty conversation log.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds a message to the end of the log. Appending a tool message
// whose ToolCallID does not match a prior assistant tool request fails with
// ErrInvalidSequence.
func (c *Conversation) Append(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msg.Role == RoleTool {
		if msg.ToolCallID == "" {
			return fmt.Errorf("%w: tool message without tool call id", ErrInvalidSequence)
		}
		if !c.hasPendingRequestLocked(msg.ToolCallID) {
			return fmt.Errorf("%w: no assistant request for tool call %q", ErrInvalidSequence, msg.ToolCallID)
		}
	}

	c.messages = append(c.messages, msg)
	return nil
}

// hasPendingRequestLocked scans backwards for an assistant message that
// requested the given tool call id. Caller must hold the lock.
func (c *Conversation) hasPendingRequestLocked(toolCallID string) bool {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].RequestsTool(toolCallID) {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the full ordered message sequence for transport
// to the model. Callers must not use it to mutate history out-of-band.
func (c *Conversation) Snapshot() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the log.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}
