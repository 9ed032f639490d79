package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hotelkit/concierge/booking"
	"github.com/hotelkit/concierge/core"
	"github.com/hotelkit/concierge/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTimeTool_ReturnsValidTimestamp(t *testing.T) {
	fixed := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	dt := NewDateTimeTool(func(o *DateTimeToolOptions) {
		o.Clock = func() time.Time { return fixed }
	})

	out, err := dt.Execute(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01T14:30:00Z", out)

	parsed, err := time.Parse(time.RFC3339, out)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(fixed))
}

func TestBookingStatusTool_FoundRecord(t *testing.T) {
	store := booking.NewInMemoryStore()
	store.Put(booking.Record{ID: "ABC123", GuestName: "Jana Novak", Room: "204", Status: "confirmed", CheckIn: "2026-09-10", CheckOut: "2026-09-14"})
	bt := NewBookingStatusTool(store)

	out, err := bt.Execute(context.Background(), map[string]any{"bookingId": "ABC123"})
	require.NoError(t, err)

	var res struct {
		Error   bool            `json:"error"`
		Errors  []string        `json:"errors"`
		Booking *booking.Record `json:"booking"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Error)
	assert.Empty(t, res.Errors)
	require.NotNil(t, res.Booking)
	assert.Equal(t, "confirmed", res.Booking.Status)
}

func TestBookingStatusTool_NotFoundIsDomainOutcome(t *testing.T) {
	bt := NewBookingStatusTool(booking.NewInMemoryStore())

	out, err := bt.Execute(context.Background(), map[string]any{"bookingId": "ABC123"})
	require.NoError(t, err, "not found must not be an execution failure")
	assert.Contains(t, out, "not found")
	assert.Contains(t, out, `"error":true`)
}

type failingStore struct{}

func (failingStore) FindByID(context.Context, string) (*booking.Record, error) {
	return nil, errors.New("store unreachable")
}

func TestBookingStatusTool_StoreFailureIsExecutionError(t *testing.T) {
	bt := NewBookingStatusTool(failingStore{})

	_, err := bt.Execute(context.Background(), map[string]any{"bookingId": "X"})
	require.Error(t, err)
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeExecution, toolErr.Code)
}

func TestBookingStatusTool_RequiresBookingIDThroughDispatcher(t *testing.T) {
	d := newTestDispatcher(t, NewBookingStatusTool(booking.NewInMemoryStore()))
	res := d.Dispatch(context.Background(), core.ToolCallRequest{ID: "1", Name: "get_booking_status", Arguments: json.RawMessage(`{}`)})
	assert.True(t, res.Failed)
	assert.Contains(t, res.Content, "bookingId")
}

func TestSendEmailTool_DeliversAndConfirms(t *testing.T) {
	notifier := notify.NewMemoryNotifier(nil)
	et := NewSendEmailTool(notifier)

	out, err := et.Execute(context.Background(), map[string]any{"content": "Guest in 204 needs extra towels"})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	require.Len(t, notifier.Sent(), 1)
	assert.Equal(t, "Guest in 204 needs extra towels", notifier.Sent()[0])
}

func TestSendEmailTool_NotifierFailureIsExecutionError(t *testing.T) {
	et := NewSendEmailTool(notify.NewMemoryNotifier(errors.New("smtp down")))

	_, err := et.Execute(context.Background(), map[string]any{"content": "hi"})
	require.Error(t, err)
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeExecution, toolErr.Code)
}
