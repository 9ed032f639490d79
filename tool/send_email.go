package tool

import (
	"context"
	"fmt"

	"github.com/hotelkit/concierge/internal/util"
	"github.com/hotelkit/concierge/notify"
)

type sendEmailArgs struct {
	Content string `json:"content" mapstructure:"content" description:"email content"`
}

// SendEmailTool forwards a message to the reception desk through the
// configured notifier and returns the delivery confirmation.
type SendEmailTool struct {
	notifier notify.Notifier
}

// NewSendEmailTool constructs a SendEmailTool over the given notifier.
func NewSendEmailTool(notifier notify.Notifier) *SendEmailTool {
	return &SendEmailTool{notifier: notifier}
}

// Name implements Tool.
func (t *SendEmailTool) Name() string { return "send_email_to_reception" }

// Description implements Tool.
func (t *SendEmailTool) Description() string { return "Send an email to the hotel reception" }

// Parameters implements Tool.
func (t *SendEmailTool) Parameters() map[string]any {
	return util.CreateSchema(sendEmailArgs{})
}

// Execute implements Tool.
func (t *SendEmailTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	var req sendEmailArgs
	if err := DecodeArgs(t.Name(), args, &req); err != nil {
		return "", err
	}

	confirmation, err := t.notifier.Send(ctx, req.Content)
	if err != nil {
		return "", NewToolError(t.Name(), fmt.Sprintf("sending email: %v", err), CodeExecution)
	}
	return confirmation, nil
}
