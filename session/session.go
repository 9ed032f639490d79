// Package session manages conversational sessions: each owns its
// append-only conversation log and a busy guard serializing turns. Sessions
// are process-local; history does not survive restarts.
package session

import (
	"sync"

	"github.com/hotelkit/concierge/core"
)

// Session is one conversational container. The conversation persists across
// turns; the busy flag ensures turns on the same session never interleave.
type Session struct {
	id   string
	conv *core.Conversation

	mu   sync.Mutex
	busy bool
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Conversation returns the session's message log.
func (s *Session) Conversation() *core.Conversation { return s.conv }

// Acquire marks the session busy for one turn. It fails with
// core.ErrSessionBusy when a turn is already in flight; callers retry later.
func (s *Session) Acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return core.ErrSessionBusy
	}
	s.busy = true
	return nil
}

// Release marks the turn finished.
func (s *Session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

// RegistryOptions configure a Registry.
type RegistryOptions struct {
	// SystemPrompt, when set, is appended as the first message of every new
	// session.
	SystemPrompt string
}

// Registry creates and tracks sessions keyed by id. Independent sessions
// share no mutable state beyond the registry map itself. Safe for concurrent
// access.
type Registry struct {
	mu           sync.Mutex
	sessions     map[string]*Session
	systemPrompt string
}

// NewRegistry constructs an empty session registry.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{sessions: make(map[string]*Session), systemPrompt: opts.SystemPrompt}
}

// Get returns the session for id, creating it lazily. New sessions start
// with the configured system prompt.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[id]; ok {
		return sess
	}
	sess := &Session{id: id, conv: core.NewConversation()}
	if r.systemPrompt != "" {
		// A fresh conversation accepts any non-tool message; the error path
		// is unreachable here.
		_ = sess.conv.Append(core.NewSystemMessage(r.systemPrompt))
	}
	r.sessions[id] = sess
	return sess
}
