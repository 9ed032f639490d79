package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hotelkit/concierge/core"
	"github.com/hotelkit/concierge/internal/util"
	"github.com/hotelkit/concierge/logging"
)

// DispatcherOptions configure a Dispatcher.
type DispatcherOptions struct {
	// MaxParallel bounds concurrent executions within one batch. 0 or less
	// means no explicit limit (batch size).
	MaxParallel int
	// Logger receives structured dispatch events.
	Logger logging.Logger
}

// Dispatcher resolves model-issued ToolCallRequests to registered handlers
// and executes them. Every request yields exactly one ToolResult with the
// matching id: argument failures, unknown tool names, handler errors and
// panics all become failure results fed back to the model, never aborted
// turns. Independent calls within a batch run concurrently.
type Dispatcher struct {
	registry    *Registry
	maxParallel int
	logger      logging.Logger
}

// NewDispatcher constructs a Dispatcher over the given registry.
func NewDispatcher(registry *Registry, optFns ...func(o *DispatcherOptions)) *Dispatcher {
	opts := DispatcherOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Dispatcher{registry: registry, maxParallel: opts.MaxParallel, logger: opts.Logger}
}

// Registry returns the catalog backing this dispatcher.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Dispatch executes a single tool call request.
func (d *Dispatcher) Dispatch(ctx context.Context, call core.ToolCallRequest) core.ToolResult {
	start := time.Now()
	result := d.execute(ctx, call)
	d.logger.Info("tool.dispatch",
		"tool", call.Name,
		"tool_call_id", call.ID,
		"failed", result.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result
}

// DispatchAll executes every call of a batch and returns results positionally
// aligned with the requests. Calls are unordered among themselves; the
// ToolCallID pairing carries the correlation.
func (d *Dispatcher) DispatchAll(ctx context.Context, calls []core.ToolCallRequest) []core.ToolResult {
	n := len(calls)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []core.ToolResult{d.Dispatch(ctx, calls[0])}
	}

	maxPar := d.maxParallel
	if maxPar <= 0 || maxPar > n {
		maxPar = n
	}

	results := make([]core.ToolResult, n)
	sem := make(chan struct{}, maxPar)
	var wg sync.WaitGroup

	batchStart := time.Now()
	for i := range calls {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, call core.ToolCallRequest) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = d.Dispatch(ctx, call)
		}(i, calls[i])
	}
	wg.Wait()

	d.logger.Debug("tool.dispatch.batch",
		"count", n,
		"parallelism", maxPar,
		"duration_ms", time.Since(batchStart).Milliseconds(),
	)
	return results
}

// execute performs lookup, argument parsing/validation and the handler call,
// converting every failure mode into a failure ToolResult.
func (d *Dispatcher) execute(ctx context.Context, call core.ToolCallRequest) (result core.ToolResult) {
	result = core.ToolResult{ToolCallID: call.ID}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tool.dispatch.panic", "tool", call.Name, "recover", fmt.Sprintf("%v", r))
			result.Failed = true
			result.Content = fmt.Sprintf("tool %q panicked: %v", call.Name, r)
		}
	}()

	impl, ok := d.registry.Lookup(call.Name)
	if !ok {
		result.Failed = true
		result.Content = NewToolError(call.Name, "unknown tool", CodeValidation).Error()
		return result
	}

	args, err := parseArguments(call.Arguments)
	if err != nil {
		result.Failed = true
		result.Content = NewToolError(call.Name, err.Error(), CodeValidation).Error()
		return result
	}
	if err := util.ValidateParameters(args, impl.Parameters()); err != nil {
		result.Failed = true
		result.Content = NewToolError(call.Name, err.Error(), CodeValidation).Error()
		return result
	}

	content, err := impl.Execute(ctx, args)
	if err != nil {
		result.Failed = true
		result.Content = err.Error()
		return result
	}
	result.Content = content
	return result
}

// parseArguments decodes the serialized argument payload; an absent payload
// is an empty object.
func parseArguments(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("malformed arguments: %v", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
