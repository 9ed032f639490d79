// Package notify defines the outbound notification collaborator used by the
// reception email tool. Implementations deliver through a real channel
// (mail gateway, ticketing system); LogNotifier and MemoryNotifier serve
// development and tests.
package notify

import (
	"context"
	"sync"

	"github.com/hotelkit/concierge/logging"
)

// Notifier delivers a message to the reception desk and returns a
// human-readable confirmation.
type Notifier interface {
	Send(ctx context.Context, content string) (string, error)
}

// LogNotifier writes the message to the structured log instead of sending it.
type LogNotifier struct {
	logger logging.Logger
}

// NewLogNotifier constructs a LogNotifier.
func NewLogNotifier(logger logging.Logger) *LogNotifier {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &LogNotifier{logger: logger}
}

// Send implements Notifier.
func (n *LogNotifier) Send(_ context.Context, content string) (string, error) {
	n.logger.Info("notify.reception.email", "content", content)
	return "Email sent to reception.", nil
}

// MemoryNotifier captures sent messages for assertions in tests.
type MemoryNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

// NewMemoryNotifier constructs an empty MemoryNotifier. A non-nil err makes
// every Send fail with it.
func NewMemoryNotifier(err error) *MemoryNotifier {
	return &MemoryNotifier{err: err}
}

// Send implements Notifier.
func (n *MemoryNotifier) Send(_ context.Context, content string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return "", n.err
	}
	n.sent = append(n.sent, content)
	return "Email sent to reception.", nil
}

// Sent returns a copy of the captured messages.
func (n *MemoryNotifier) Sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.sent))
	copy(out, n.sent)
	return out
}
