package session

import (
	"testing"

	"github.com/hotelkit/concierge/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_LazyCreateWithSystemPrompt(t *testing.T) {
	reg := NewRegistry(func(o *RegistryOptions) {
		o.SystemPrompt = "You are a helpful hotel concierge."
	})

	sess := reg.Get("guest-1")
	snap := sess.Conversation().Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, core.RoleSystem, snap[0].Role)
	assert.Equal(t, "You are a helpful hotel concierge.", snap[0].Content)
}

func TestRegistry_GetReturnsSameSession(t *testing.T) {
	reg := NewRegistry()
	a := reg.Get("guest-1")
	b := reg.Get("guest-1")
	assert.Same(t, a, b)
}

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	reg := NewRegistry()
	a := reg.Get("guest-1")
	b := reg.Get("guest-2")

	require.NoError(t, a.Conversation().Append(core.NewUserMessage("hello from 1")))
	assert.Equal(t, 0, b.Conversation().Len())
}

func TestSession_AcquireIsExclusive(t *testing.T) {
	sess := NewRegistry().Get("guest-1")

	require.NoError(t, sess.Acquire())
	assert.ErrorIs(t, sess.Acquire(), core.ErrSessionBusy)

	sess.Release()
	assert.NoError(t, sess.Acquire())
}
