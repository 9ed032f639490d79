package tool

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// FunctionTool is a generic adapter that exposes a plain Go function as a
// Tool. The dispatcher validates arguments against the declared schema before
// Execute runs, so the wrapped function receives conforming input.
//
// A FunctionTool has no internal mutable state after construction and is safe
// for concurrent use by multiple goroutines.
type FunctionTool struct {
	name        string
	description string
	parameters  map[string]any
	fn          func(ctx context.Context, args map[string]any) (string, error)
}

// NewFunctionTool constructs a FunctionTool from explicit schema and function.
//
// Example:
//
//	echo := NewFunctionTool(
//	  "echo",
//	  "Repeat the given text",
//	  map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	      "text": map[string]any{"type": "string"},
//	    },
//	    "required": []string{"text"},
//	  },
//	  func(_ context.Context, args map[string]any) (string, error) {
//	    return args["text"].(string), nil
//	  },
//	)
func NewFunctionTool(
	name, description string,
	parameters map[string]any,
	fn func(ctx context.Context, args map[string]any) (string, error),
) *FunctionTool {
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// Name returns the unique tool name used in catalog declarations and routing.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the short natural language description exposed to models.
func (t *FunctionTool) Description() string { return t.description }

// Parameters returns the JSON schema describing expected arguments.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// Execute invokes the underlying function. Non-ToolError failures are
// wrapped as execution errors for uniform downstream handling.
func (t *FunctionTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	result, err := t.fn(ctx, args)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok {
			return "", toolErr
		}
		return "", NewToolError(t.name, err.Error(), CodeExecution)
	}
	return result, nil
}

// DecodeArgs decodes a validated argument map into a typed struct using
// mapstructure tags. Decode failures are validation-class tool errors.
func DecodeArgs(toolName string, args map[string]any, out any) error {
	if err := mapstructure.Decode(args, out); err != nil {
		return NewToolError(toolName, fmt.Sprintf("decoding arguments: %v", err), CodeValidation)
	}
	return nil
}
