package tool

import (
	"context"
	"time"
)

// DateTimeToolOptions configure the date/time tool.
type DateTimeToolOptions struct {
	// Clock supplies the current instant; defaults to time.Now.
	Clock func() time.Time
}

// DateTimeTool reports the current date and time. It takes no arguments and
// cannot fail.
type DateTimeTool struct {
	clock func() time.Time
}

// NewDateTimeTool constructs a DateTimeTool.
func NewDateTimeTool(optFns ...func(o *DateTimeToolOptions)) *DateTimeTool {
	opts := DateTimeToolOptions{Clock: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &DateTimeTool{clock: opts.Clock}
}

// Name implements Tool.
func (t *DateTimeTool) Name() string { return "get_date_time" }

// Description implements Tool.
func (t *DateTimeTool) Description() string { return "Get the current date and time" }

// Parameters implements Tool.
func (t *DateTimeTool) Parameters() map[string]any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}

// Execute implements Tool.
func (t *DateTimeTool) Execute(context.Context, map[string]any) (string, error) {
	return t.clock().UTC().Format(time.RFC3339), nil
}
