package core

import (
	"errors"
	"fmt"
)

// ErrInvalidSequence signals a structural violation of the conversation log,
// e.g. a tool result appended without a preceding matching assistant request.
// It indicates a programming error, not a runtime condition to recover from.
var ErrInvalidSequence = errors.New("invalid message sequence")

// ErrSessionBusy signals that a turn was attempted on a session that is
// already processing one. Callers should retry later.
var ErrSessionBusy = errors.New("session busy")

// ErrRetrievalUnavailable signals that the retrieval index could not be
// reached. The orchestrator treats it as "no grounding available".
var ErrRetrievalUnavailable = errors.New("retrieval unavailable")

// ErrUnexpectedToolLoop signals that the model requested tools again on the
// second round-trip without any usable answer text.
var ErrUnexpectedToolLoop = errors.New("unexpected tool loop")

// TransportError wraps a failure from the underlying model provider
// (network, auth, rate limit). It is propagated, never retried, by the
// invocation gateway.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("model transport error (%s): %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("model transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError wraps err as a TransportError for the given provider.
func NewTransportError(provider string, err error) *TransportError {
	return &TransportError{Provider: provider, Err: err}
}
