package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		from BookingStatus
		want BookingStatus
		ok   bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingConfirmed, BookingInProgress, true},
		{BookingInProgress, BookingCompleted, true},
		{BookingCompleted, "", false},
		{BookingCancelled, "", false},
		{BookingStatus("Archived"), "", false},
	}

	for _, tc := range cases {
		got, ok := NextStatus(tc.from)
		assert.Equal(t, tc.ok, ok, "from %q", tc.from)
		assert.Equal(t, tc.want, got, "from %q", tc.from)
	}
}

func TestBooking_AdvanceToCompleted(t *testing.T) {
	b := &Booking{Status: BookingPending}

	assert.True(t, b.Advance())
	assert.Equal(t, BookingConfirmed, b.Status)

	b.Advance()
	b.Advance()
	assert.Equal(t, BookingCompleted, b.Status)

	// further advances change nothing
	assert.False(t, b.Advance())
	assert.False(t, b.Advance())
	assert.Equal(t, BookingCompleted, b.Status)
}

func TestBooking_Cancel(t *testing.T) {
	for _, from := range []BookingStatus{BookingPending, BookingConfirmed, BookingInProgress} {
		b := &Booking{Status: from}
		assert.True(t, b.Cancel(), "cancel from %q", from)
		assert.Equal(t, BookingCancelled, b.Status)
	}

	for _, from := range []BookingStatus{BookingCompleted, BookingCancelled} {
		b := &Booking{Status: from}
		assert.False(t, b.Cancel(), "cancel from %q", from)
		assert.Equal(t, from, b.Status)
	}
}

func TestBooking_CancelledCannotAdvance(t *testing.T) {
	b := &Booking{Status: BookingConfirmed}
	b.Cancel()

	assert.False(t, b.Advance())
	assert.Equal(t, BookingCancelled, b.Status)
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.True(t, BookingCompleted.IsTerminal())
	assert.True(t, BookingCancelled.IsTerminal())
	assert.False(t, BookingPending.IsTerminal())
	assert.False(t, BookingInProgress.IsTerminal())
}
