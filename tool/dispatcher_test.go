package tool

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hotelkit/concierge/core"
)

type mockTool struct {
	name     string
	params   map[string]any
	delay    time.Duration
	result   string
	err      error
	panicMsg any
}

func (mt *mockTool) Name() string        { return mt.name }
func (mt *mockTool) Description() string { return "mock tool" }
func (mt *mockTool) Parameters() map[string]any {
	if mt.params != nil {
		return mt.params
	}
	return map[string]any{"type": "object", "properties": map[string]any{}}
}
func (mt *mockTool) Execute(ctx context.Context, _ map[string]any) (string, error) {
	if mt.delay > 0 {
		select {
		case <-time.After(mt.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if mt.panicMsg != nil {
		panic(mt.panicMsg)
	}
	return mt.result, mt.err
}

func newTestDispatcher(t *testing.T, tools ...Tool) *Dispatcher {
	t.Helper()
	reg, err := NewRegistry(tools...)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return NewDispatcher(reg)
}

func TestDispatcher_Single(t *testing.T) {
	d := newTestDispatcher(t, &mockTool{name: "one", result: "42"})
	res := d.Dispatch(context.Background(), core.ToolCallRequest{ID: "1", Name: "one", Arguments: json.RawMessage(`{}`)})
	if res.Failed {
		t.Fatalf("unexpected failure: %s", res.Content)
	}
	if res.Content != "42" || res.ToolCallID != "1" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestDispatcher_BatchPairsResultsWithRequests(t *testing.T) {
	d := newTestDispatcher(t,
		&mockTool{name: "slow", delay: 40 * time.Millisecond, result: "s"},
		&mockTool{name: "fast", delay: 5 * time.Millisecond, result: "f"},
	)
	calls := []core.ToolCallRequest{
		{ID: "1", Name: "slow", Arguments: json.RawMessage(`{}`)},
		{ID: "2", Name: "fast", Arguments: json.RawMessage(`{}`)},
	}
	start := time.Now()
	results := d.DispatchAll(context.Background(), calls)
	elapsed := time.Since(start)

	if len(results) != 2 {
		t.Fatalf("want 2 results got %d", len(results))
	}
	if results[0].ToolCallID != "1" || results[0].Content != "s" {
		t.Fatalf("result 0 not paired: %+v", results[0])
	}
	if results[1].ToolCallID != "2" || results[1].Content != "f" {
		t.Fatalf("result 1 not paired: %+v", results[1])
	}
	if elapsed > 80*time.Millisecond {
		t.Fatalf("expected parallel execution, elapsed=%v", elapsed)
	}
}

func TestDispatcher_UnknownToolBecomesFailureResult(t *testing.T) {
	d := newTestDispatcher(t, &mockTool{name: "known"})
	res := d.Dispatch(context.Background(), core.ToolCallRequest{ID: "1", Name: "nope", Arguments: json.RawMessage(`{}`)})
	if !res.Failed {
		t.Fatal("expected failure result")
	}
	if !strings.Contains(res.Content, "unknown tool") || !strings.Contains(res.Content, CodeValidation) {
		t.Fatalf("unexpected diagnostic: %s", res.Content)
	}
	if res.ToolCallID != "1" {
		t.Fatalf("id not preserved: %+v", res)
	}
}

func TestDispatcher_MalformedArgumentsBecomeFailureResult(t *testing.T) {
	d := newTestDispatcher(t, &mockTool{name: "one"})
	res := d.Dispatch(context.Background(), core.ToolCallRequest{ID: "1", Name: "one", Arguments: json.RawMessage(`{broken`)})
	if !res.Failed {
		t.Fatal("expected failure result")
	}
	if !strings.Contains(res.Content, "malformed arguments") {
		t.Fatalf("unexpected diagnostic: %s", res.Content)
	}
}

func TestDispatcher_MissingRequiredArgumentBecomesFailureResult(t *testing.T) {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"bookingId": map[string]any{"type": "string"},
		},
		"required": []string{"bookingId"},
	}
	d := newTestDispatcher(t, &mockTool{name: "strict", params: params})
	res := d.Dispatch(context.Background(), core.ToolCallRequest{ID: "1", Name: "strict", Arguments: json.RawMessage(`{}`)})
	if !res.Failed {
		t.Fatal("expected failure result")
	}
	if !strings.Contains(res.Content, "bookingId") {
		t.Fatalf("diagnostic should name the field: %s", res.Content)
	}
}

func TestDispatcher_HandlerErrorBecomesFailureResult(t *testing.T) {
	d := newTestDispatcher(t, &mockTool{name: "bad", err: errors.New("boom")})
	res := d.Dispatch(context.Background(), core.ToolCallRequest{ID: "1", Name: "bad", Arguments: json.RawMessage(`{}`)})
	if !res.Failed {
		t.Fatal("expected failure result")
	}
	if !strings.Contains(res.Content, "boom") {
		t.Fatalf("unexpected diagnostic: %s", res.Content)
	}
}

func TestDispatcher_PanicRecovery(t *testing.T) {
	d := newTestDispatcher(t, &mockTool{name: "panic", panicMsg: "kaboom"})
	res := d.Dispatch(context.Background(), core.ToolCallRequest{ID: "1", Name: "panic", Arguments: json.RawMessage(`{}`)})
	if !res.Failed {
		t.Fatal("expected panic converted to failure result")
	}
	if !strings.Contains(res.Content, "panicked") {
		t.Fatalf("unexpected diagnostic: %s", res.Content)
	}
}

func TestDispatcher_ErrorIsolationInBatch(t *testing.T) {
	d := newTestDispatcher(t,
		&mockTool{name: "ok", result: "fine"},
		&mockTool{name: "bad", err: errors.New("boom")},
	)
	results := d.DispatchAll(context.Background(), []core.ToolCallRequest{
		{ID: "1", Name: "ok", Arguments: json.RawMessage(`{}`)},
		{ID: "2", Name: "bad", Arguments: json.RawMessage(`{}`)},
	})
	if results[0].Failed {
		t.Fatalf("ok call should succeed: %+v", results[0])
	}
	if !results[1].Failed {
		t.Fatal("bad call should fail")
	}
}

func TestDispatcher_EmptyArgumentsAllowed(t *testing.T) {
	d := newTestDispatcher(t, &mockTool{name: "noargs", result: "ok"})
	res := d.Dispatch(context.Background(), core.ToolCallRequest{ID: "1", Name: "noargs"})
	if res.Failed {
		t.Fatalf("unexpected failure: %s", res.Content)
	}
}
