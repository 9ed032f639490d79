// Package concierge provides a high-level façade over the turn runner and
// its supporting services (retrieval, tool dispatch, sessions & logging) for
// building a grounded hotel assistant. Most applications interact with this
// package by:
//  1. Creating a Service via New() with a model transport, a retrieval index
//     and the tool set
//  2. Calling HandleTurn once per user utterance
//
// The façade delegates orchestration to runner.Runner while keeping setup
// and usage ergonomics concise. All defaults are safe for local development
// and testing; production deployments typically supply a durable booking
// store and a structured logger.
package concierge

import (
	"context"

	"github.com/hotelkit/concierge/logging"
	"github.com/hotelkit/concierge/model"
	"github.com/hotelkit/concierge/retrieval"
	"github.com/hotelkit/concierge/runner"
	"github.com/hotelkit/concierge/session"
	"github.com/hotelkit/concierge/tool"
)

// DefaultSystemPrompt frames the assistant for hotel guest conversations.
// Callers can override it per deployment via Options.SystemPrompt.
const DefaultSystemPrompt = "You are a helpful hotel concierge. Answer guest questions " +
	"using the information provided in the conversation. Use the available tools when a " +
	"question requires the current time, a reservation lookup, or a message to reception. " +
	"If you do not know the answer, say so instead of guessing."

// Options configures the Service instance.
type Options struct {
	// SystemPrompt seeds every new session. Empty disables the prompt.
	SystemPrompt string
	// RetrievalK is the number of matches requested per query; only the top
	// match is injected into the conversation.
	RetrievalK int
	// MaxParallelTools bounds concurrent tool executions within one batch.
	// 0 means unbounded.
	MaxParallelTools int
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Service is the high-level façade aggregating the runner and its services.
type Service struct {
	opts   Options
	runner *runner.Runner
}

// New wires a Service from a model transport, a retrieval index and a tool
// set. Tool names must be unique; a duplicate fails construction.
func New(transport model.Transport, index retrieval.Index, tools []tool.Tool, optFns ...func(o *Options)) (*Service, error) {
	opts := Options{
		SystemPrompt: DefaultSystemPrompt,
		RetrievalK:   1,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	registry, err := tool.NewRegistry(tools...)
	if err != nil {
		return nil, err
	}

	r := runner.New(
		model.NewGateway(transport),
		retrieval.NewAugmenter(index, func(o *retrieval.AugmenterOptions) {
			o.K = opts.RetrievalK
			o.Logger = opts.Logger
		}),
		tool.NewDispatcher(registry, func(o *tool.DispatcherOptions) {
			o.MaxParallel = opts.MaxParallelTools
			o.Logger = opts.Logger
		}),
		func(o *runner.Options) {
			o.Sessions = session.NewRegistry(func(ro *session.RegistryOptions) {
				ro.SystemPrompt = opts.SystemPrompt
			})
			o.Logger = opts.Logger
		},
	)

	return &Service{opts: opts, runner: r}, nil
}

// HandleTurn processes one user utterance for the given session and returns
// the assistant's answer.
func (s *Service) HandleTurn(ctx context.Context, sessionID, userText string) (string, error) {
	return s.runner.HandleTurn(ctx, sessionID, userText)
}

// Sessions exposes the session registry, mainly for inspection in tests and
// admin tooling.
func (s *Service) Sessions() *session.Registry { return s.runner.Sessions() }
