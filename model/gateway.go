package model

import (
	"context"

	"github.com/hotelkit/concierge/core"
	"github.com/hotelkit/concierge/logging"
)

// GatewayOptions configure a Gateway.
type GatewayOptions struct {
	// Logger receives structured invocation events.
	Logger logging.Logger
}

// Gateway sends a conversation snapshot plus the static tool catalog through
// a Transport and classifies the completion into a core.ModelResponse. It
// owns the termination-reason check so orchestration logic never inspects
// provider response shapes. Transport failures are wrapped as
// *core.TransportError and propagated, never retried or swallowed.
type Gateway struct {
	transport Transport
	logger    logging.Logger
}

// NewGateway constructs a Gateway over the given transport.
func NewGateway(transport Transport, optFns ...func(o *GatewayOptions)) *Gateway {
	opts := GatewayOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Gateway{transport: transport, logger: opts.Logger}
}

// Invoke performs one model call. A nil or empty catalog means the model is
// invoked without tools (the second round-trip of a turn). Tool choice is
// always auto while a catalog is supplied.
func (g *Gateway) Invoke(ctx context.Context, messages []core.Message, catalog []ToolDefinition) (core.ModelResponse, error) {
	choice := ToolChoice("")
	if len(catalog) > 0 {
		choice = ToolChoiceAuto
	}

	completion, err := g.transport.Complete(ctx, messages, catalog, choice)
	if err != nil {
		g.logger.Error("gateway.invoke.error", "provider", g.transport.Info().Provider, "error", err.Error())
		return nil, core.NewTransportError(g.transport.Info().Provider, err)
	}

	g.logger.Debug("gateway.invoke.complete",
		"provider", g.transport.Info().Provider,
		"finish_reason", completion.FinishReason,
		"tool_calls", len(completion.ToolCalls),
	)

	if wantsTools(completion) {
		return core.ToolCallRequested{Calls: completion.ToolCalls, Text: completion.Text}, nil
	}
	return core.FinalAnswer{Text: completion.Text}, nil
}

// wantsTools is the boolean classification of the transport's termination
// signal: the model explicitly requested tool invocation and at least one
// call was surfaced.
func wantsTools(c *Completion) bool {
	return c.FinishReason == FinishReasonToolCalls && len(c.ToolCalls) > 0
}
