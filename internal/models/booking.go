package models

import (
	"errors"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// DurationType represents the unit a booking is priced in
type DurationType string

const (
	DurationHourly DurationType = "hourly"
	DurationDaily  DurationType = "daily"
	DurationWeekly DurationType = "weekly"
)

// Booking represents a car rental reservation
type Booking struct {
	ID           string        `json:"id" db:"id"`
	CarID        string        `json:"car_id" db:"car_id"`
	UserID       string        `json:"user_id" db:"user_id"`
	StoreID      string        `json:"store_id" db:"store_id"`
	StartDate    time.Time     `json:"start_date" db:"start_date"`
	EndDate      time.Time     `json:"end_date" db:"end_date"`
	DurationType DurationType  `json:"duration_type" db:"duration_type"`
	TotalPrice   float64       `json:"total_price" db:"total_price"`
	Status       BookingStatus `json:"status" db:"status"`
	Notes        *string       `json:"notes,omitempty" db:"notes"`
	DeviceInfo   *string       `json:"device_info,omitempty" db:"device_info"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// CreateBookingRequest represents the request to book a car
type CreateBookingRequest struct {
	CarID        string  `json:"car_id" binding:"required"`
	StartDate    string  `json:"start_date" binding:"required"` // RFC 3339
	EndDate      string  `json:"end_date" binding:"required"`   // RFC 3339
	DurationType string  `json:"duration_type" binding:"required"`
	Notes        *string `json:"notes,omitempty"`
}

// UpdateBookingStatusRequest represents a status transition request
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CancelBookingRequest represents the request to cancel a booking
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// Validate validates the CreateBookingRequest and returns the parsed
// date range.
func (r *CreateBookingRequest) Validate() (time.Time, time.Time, error) {
	durationType := DurationType(r.DurationType)
	if durationType != DurationHourly && durationType != DurationDaily && durationType != DurationWeekly {
		return time.Time{}, time.Time{}, errors.New("invalid duration_type: must be hourly, daily, or weekly")
	}

	start, err := time.Parse(time.RFC3339, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start_date: must be RFC 3339")
	}

	end, err := time.Parse(time.RFC3339, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end_date: must be RFC 3339")
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, errors.New("start_date must be before end_date")
	}

	return start, end, nil
}

// CanTransitionTo reports whether a booking may move to the target status.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	switch target {
	case BookingStatusConfirmed:
		return b.Status == BookingStatusPending
	case BookingStatusActive:
		return b.Status == BookingStatusConfirmed
	case BookingStatusCompleted:
		return b.Status == BookingStatusActive
	case BookingStatusCancelled:
		return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
	default:
		return false
	}
}

// CanBeCancelled checks if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.CanTransitionTo(BookingStatusCancelled)
}
