// Package runner implements the turn orchestrator: it sequences retrieval,
// context building, model invocation and tool dispatch into one
// user-utterance-to-answer cycle spanning at most two model round-trips.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/hotelkit/concierge/core"
	"github.com/hotelkit/concierge/internal/util"
	"github.com/hotelkit/concierge/logging"
	"github.com/hotelkit/concierge/model"
	"github.com/hotelkit/concierge/retrieval"
	"github.com/hotelkit/concierge/session"
	"github.com/hotelkit/concierge/tool"
)

// Options holds dependency and configuration overrides passed to New.
type Options struct {
	// Sessions owns the conversation per session id.
	Sessions *session.Registry
	// Logger receives structured turn events.
	Logger logging.Logger
}

// Runner coordinates one conversational turn at a time per session:
// retrieval augmentation, the first model call with the full tool catalog,
// tool dispatch when requested, and the second model call without a catalog.
// The protocol never chains past one tool round-trip. Public methods are safe
// for concurrent use; concurrency within a session is rejected with
// core.ErrSessionBusy.
type Runner struct {
	gateway    *model.Gateway
	augmenter  *retrieval.Augmenter
	dispatcher *tool.Dispatcher
	catalog    []model.ToolDefinition
	sessions   *session.Registry
	logger     logging.Logger
}

// New constructs a Runner. The tool catalog is rendered once from the
// dispatcher's registry; it is static for the process lifetime.
func New(
	gateway *model.Gateway,
	augmenter *retrieval.Augmenter,
	dispatcher *tool.Dispatcher,
	optFns ...func(o *Options),
) *Runner {
	opts := Options{
		Sessions: session.NewRegistry(),
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{
		gateway:    gateway,
		augmenter:  augmenter,
		dispatcher: dispatcher,
		catalog:    dispatcher.Registry().Catalog(),
		sessions:   opts.Sessions,
		logger:     opts.Logger,
	}
}

// Sessions returns the session registry backing this runner.
func (r *Runner) Sessions() *session.Registry { return r.sessions }

// HandleTurn processes one user utterance and returns the answer text. The
// turn fails whole on model transport errors; no partial answer is emitted.
// A retrieval failure downgrades to "no grounding" and the turn proceeds.
func (r *Runner) HandleTurn(ctx context.Context, sessionID, userText string) (string, error) {
	sess := r.sessions.Get(sessionID)
	if err := sess.Acquire(); err != nil {
		return "", fmt.Errorf("session %s: %w", sessionID, err)
	}
	defer sess.Release()

	turnID := util.NewID()
	logger := r.logger
	conv := sess.Conversation()

	logger.Info("turn.start", "session_id", sessionID, "turn_id", turnID)

	// RETRIEVE: one similarity query; unavailability is not fatal.
	match, err := r.augmenter.Augment(ctx, conv, userText)
	switch {
	case errors.Is(err, core.ErrRetrievalUnavailable):
		logger.Warn("turn.retrieval.unavailable", "turn_id", turnID, "error", err.Error())
	case err != nil:
		return "", fmt.Errorf("augmenting turn: %w", err)
	case match != nil:
		logger.Debug("turn.grounded", "turn_id", turnID, "score", match.Score)
	}

	// CONTEXT_BUILT: the user message follows any grounding message.
	if err := conv.Append(core.NewUserMessage(userText)); err != nil {
		return "", fmt.Errorf("appending user message: %w", err)
	}

	// FIRST_MODEL_CALL: full context plus the static tool catalog.
	resp, err := r.gateway.Invoke(ctx, conv.Snapshot(), r.catalog)
	if err != nil {
		return "", fmt.Errorf("first model call: %w", err)
	}

	switch v := resp.(type) {
	case core.FinalAnswer:
		return r.finish(conv, logger, turnID, v.Text, 1)
	case core.ToolCallRequested:
		return r.toolRoundTrip(ctx, conv, logger, turnID, v)
	default:
		return "", fmt.Errorf("unhandled model response %T", resp)
	}
}

// toolRoundTrip records the tool request, dispatches every call, appends the
// paired results and issues the second model call without a tool catalog.
func (r *Runner) toolRoundTrip(
	ctx context.Context,
	conv *core.Conversation,
	logger logging.Logger,
	turnID string,
	requested core.ToolCallRequested,
) (string, error) {
	logger.Info("turn.tools.requested", "turn_id", turnID, "count", len(requested.Calls))

	if err := conv.Append(core.NewToolRequestMessage(requested.Text, requested.Calls)); err != nil {
		return "", fmt.Errorf("appending tool request: %w", err)
	}

	// All results are appended before the second call; partial completion
	// never proceeds.
	results := r.dispatcher.DispatchAll(ctx, requested.Calls)
	for _, res := range results {
		if err := conv.Append(core.NewToolResultMessage(res)); err != nil {
			return "", fmt.Errorf("appending tool result: %w", err)
		}
	}

	// SECOND_MODEL_CALL: no catalog; the protocol never chains past one
	// tool round-trip.
	resp, err := r.gateway.Invoke(ctx, conv.Snapshot(), nil)
	if err != nil {
		return "", fmt.Errorf("second model call: %w", err)
	}

	switch v := resp.(type) {
	case core.FinalAnswer:
		return r.finish(conv, logger, turnID, v.Text, 2)
	case core.ToolCallRequested:
		// The model asked for tools again. Any accompanying text serves as
		// the answer; with none the turn fails rather than loop.
		if v.Text != "" {
			logger.Warn("turn.tool_loop.text_fallback", "turn_id", turnID, "dropped_calls", len(v.Calls))
			return r.finish(conv, logger, turnID, v.Text, 2)
		}
		return "", fmt.Errorf("second model call: %w", core.ErrUnexpectedToolLoop)
	default:
		return "", fmt.Errorf("unhandled model response %T", resp)
	}
}

// finish records the assistant answer and closes the turn.
func (r *Runner) finish(conv *core.Conversation, logger logging.Logger, turnID, text string, modelCalls int) (string, error) {
	if err := conv.Append(core.NewAssistantMessage(text)); err != nil {
		return "", fmt.Errorf("appending answer: %w", err)
	}
	logger.Info("turn.done", "turn_id", turnID, "model_calls", modelCalls)
	return text, nil
}
