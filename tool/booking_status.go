package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hotelkit/concierge/booking"
	"github.com/hotelkit/concierge/internal/util"
)

type bookingStatusArgs struct {
	BookingID string `json:"bookingId" mapstructure:"bookingId" description:"booking id"`
}

// bookingStatusResult is the structured-as-text payload returned to the
// model. Error carries domain semantics: a missing reservation sets it true
// without failing the tool call.
type bookingStatusResult struct {
	Error   bool            `json:"error"`
	Errors  []string        `json:"errors"`
	Booking *booking.Record `json:"booking,omitempty"`
}

// BookingStatusTool looks up a reservation in the booking record store. A
// nonexistent id is a domain outcome reported in the result text, not an
// execution failure.
type BookingStatusTool struct {
	store booking.Store
}

// NewBookingStatusTool constructs a BookingStatusTool over the given store.
func NewBookingStatusTool(store booking.Store) *BookingStatusTool {
	return &BookingStatusTool{store: store}
}

// Name implements Tool.
func (t *BookingStatusTool) Name() string { return "get_booking_status" }

// Description implements Tool.
func (t *BookingStatusTool) Description() string {
	return "Get booking status and reservation details for a booking id"
}

// Parameters implements Tool.
func (t *BookingStatusTool) Parameters() map[string]any {
	return util.CreateSchema(bookingStatusArgs{})
}

// Execute implements Tool.
func (t *BookingStatusTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	var req bookingStatusArgs
	if err := DecodeArgs(t.Name(), args, &req); err != nil {
		return "", err
	}

	rec, err := t.store.FindByID(ctx, req.BookingID)
	if errors.Is(err, booking.ErrNotFound) {
		return marshalResult(bookingStatusResult{
			Error:  true,
			Errors: []string{fmt.Sprintf("reservation %s not found", req.BookingID)},
		})
	}
	if err != nil {
		return "", NewToolError(t.Name(), fmt.Sprintf("booking store lookup failed: %v", err), CodeExecution)
	}
	return marshalResult(bookingStatusResult{Error: false, Errors: []string{}, Booking: rec})
}

func marshalResult(res bookingStatusResult) (string, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return "", NewToolError("get_booking_status", fmt.Sprintf("encoding result: %v", err), CodeExecution)
	}
	return string(raw), nil
}
