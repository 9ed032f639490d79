// Package tool implements the function calling subsystem: the Tool interface
// for callable capabilities, a registry forming the static process-wide
// catalog, and the dispatcher that resolves model-issued call requests to
// handlers and executes them with consistent error handling.
package tool

import (
	"context"
	"fmt"

	"github.com/hotelkit/concierge/internal/util"
)

// Tool is a callable capability exposed to the model. Registering a new tool
// means adding one implementation to the catalog; the dispatcher never
// changes.
//
// Tool implementations should:
//   - Provide clear, descriptive names (snake_case) and descriptions
//   - Define a JSON schema for parameters
//   - Return domain outcomes (e.g. "not found") as result text, reserving
//     errors for genuine execution failures
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a model-facing description of what the tool does.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Execute runs the tool with already-validated arguments and returns the
	// result text fed back to the model.
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// Error codes used by ToolError.
const (
	// CodeValidation marks argument/schema mismatches and unknown tool names.
	CodeValidation = "VALIDATION_ERROR"
	// CodeExecution marks failures inside a handler.
	CodeExecution = "EXECUTION_ERROR"
)

// ToolError represents errors that occur during tool resolution or execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
