package services

import (
	"time"

	"github.com/drivehub/rental-backend/internal/database"
)

// AvailabilityService answers whether a car is free for a date range.
// A car is unavailable when any confirmed or active booking overlaps the
// requested range; both ranges are treated as closed intervals, so
// bookings that touch only at an endpoint still conflict.
type AvailabilityService struct {
	bookings *database.BookingRepository
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(bookings *database.BookingRepository) *AvailabilityService {
	return &AvailabilityService{bookings: bookings}
}

// IsCarAvailable reports whether the car has no conflicting booking in
// the given range.
func (s *AvailabilityService) IsCarAvailable(carID string, start, end time.Time) (bool, error) {
	count, err := s.bookings.CountOverlapping(carID, start, end)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
