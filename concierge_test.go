package concierge

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hotelkit/concierge/booking"
	"github.com/hotelkit/concierge/core"
	"github.com/hotelkit/concierge/model"
	"github.com/hotelkit/concierge/retrieval/memory"
	"github.com/hotelkit/concierge/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unitEmbedder struct{}

func (unitEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func TestNewRejectsDuplicateToolNames(t *testing.T) {
	transport := model.NewMockTransport()
	idx := memory.NewIndex(unitEmbedder{})

	_, err := New(transport, idx, []tool.Tool{tool.NewDateTimeTool(), tool.NewDateTimeTool()})
	assert.Error(t, err)
}

func TestServiceHandleTurn(t *testing.T) {
	transport := model.NewMockTransport()
	transport.QueueAnswer("Checkout is at 11am.")

	idx := memory.NewIndex(unitEmbedder{})
	require.NoError(t, idx.Add(context.Background(), "doc-1", `[policies][checkout] - "Checkout is at 11am."`, nil))

	svc, err := New(transport, idx, []tool.Tool{tool.NewDateTimeTool()})
	require.NoError(t, err)

	answer, err := svc.HandleTurn(context.Background(), "guest-1", "when is checkout?")
	require.NoError(t, err)
	assert.Equal(t, "Checkout is at 11am.", answer)

	// New sessions open with the default system prompt, then grounding,
	// user and answer.
	snap := svc.Sessions().Get("guest-1").Conversation().Snapshot()
	require.Len(t, snap, 4)
	assert.Equal(t, core.RoleSystem, snap[0].Role)
	assert.Equal(t, DefaultSystemPrompt, snap[0].Content)
	assert.Contains(t, snap[1].Content, "Checkout is at 11am.")
}

func TestServiceToolFlowEndToEnd(t *testing.T) {
	transport := model.NewMockTransport()
	transport.QueueToolCalls("", core.ToolCallRequest{
		ID:        "call_1",
		Name:      "get_booking_status",
		Arguments: json.RawMessage(`{"bookingId":"B7"}`),
	})
	transport.QueueAnswer("Booking B7 is confirmed for room 204.")

	store := booking.NewInMemoryStore()
	store.Put(booking.Record{ID: "B7", GuestName: "Ana Silva", Room: "204", Status: "confirmed", CheckIn: "2026-09-05", CheckOut: "2026-09-08"})

	idx := memory.NewIndex(unitEmbedder{})
	clock := func() time.Time { return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC) }
	svc, err := New(transport, idx, []tool.Tool{
		tool.NewDateTimeTool(func(o *tool.DateTimeToolOptions) { o.Clock = clock }),
		tool.NewBookingStatusTool(store),
	}, func(o *Options) {
		o.SystemPrompt = "" // exercised without a prompt
	})
	require.NoError(t, err)

	answer, err := svc.HandleTurn(context.Background(), "guest-1", "status of booking B7?")
	require.NoError(t, err)
	assert.Contains(t, answer, "B7")

	calls := transport.Calls()
	require.Len(t, calls, 2)
	assert.NotEmpty(t, calls[0].Tools)
	assert.Empty(t, calls[1].Tools)
}
