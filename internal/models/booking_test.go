package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", BookingStatusPending, BookingStatusConfirmed, true},
		{"confirmed to active", BookingStatusConfirmed, BookingStatusActive, true},
		{"active to completed", BookingStatusActive, BookingStatusCompleted, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, true},
		{"pending to active skips confirmation", BookingStatusPending, BookingStatusActive, false},
		{"active to cancelled after pickup", BookingStatusActive, BookingStatusCancelled, false},
		{"completed to cancelled", BookingStatusCompleted, BookingStatusCancelled, false},
		{"completed is terminal", BookingStatusCompleted, BookingStatusActive, false},
		{"cancelled is terminal", BookingStatusCancelled, BookingStatusConfirmed, false},
		{"no transition back to pending", BookingStatusConfirmed, BookingStatusPending, false},
		{"unknown target", BookingStatusPending, BookingStatus("archived"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingCanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingStatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: BookingStatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: BookingStatusActive}).CanBeCancelled())
	assert.False(t, (&Booking{Status: BookingStatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: BookingStatusCancelled}).CanBeCancelled())
}

func TestCreateBookingRequestValidate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		req := &CreateBookingRequest{
			CarID:        "car-1",
			StartDate:    "2026-03-10T09:00:00Z",
			EndDate:      "2026-03-13T09:00:00Z",
			DurationType: "daily",
		}

		start, end, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, 72.0, end.Sub(start).Hours())
	})

	t.Run("Invalid duration type", func(t *testing.T) {
		req := &CreateBookingRequest{
			StartDate:    "2026-03-10T09:00:00Z",
			EndDate:      "2026-03-11T09:00:00Z",
			DurationType: "monthly",
		}

		_, _, err := req.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duration_type")
	})

	t.Run("Malformed start date", func(t *testing.T) {
		req := &CreateBookingRequest{
			StartDate:    "10/03/2026",
			EndDate:      "2026-03-11T09:00:00Z",
			DurationType: "daily",
		}

		_, _, err := req.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "start_date")
	})

	t.Run("End before start", func(t *testing.T) {
		req := &CreateBookingRequest{
			StartDate:    "2026-03-12T09:00:00Z",
			EndDate:      "2026-03-10T09:00:00Z",
			DurationType: "daily",
		}

		_, _, err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Equal start and end", func(t *testing.T) {
		req := &CreateBookingRequest{
			StartDate:    "2026-03-10T09:00:00Z",
			EndDate:      "2026-03-10T09:00:00Z",
			DurationType: "hourly",
		}

		_, _, err := req.Validate()
		assert.Error(t, err)
	})
}
