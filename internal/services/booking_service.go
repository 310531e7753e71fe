package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/drivehub/rental-backend/internal/database"
	"github.com/drivehub/rental-backend/internal/models"
)

// Booking service errors surfaced as business-rule failures
var (
	ErrInvalidTransition = errors.New("booking cannot move to the requested status")
	ErrNotBookingOwner   = errors.New("booking belongs to another user")
	ErrNotBookingStore   = errors.New("booking belongs to another store")
)

// BookingService handles business logic for car rental bookings
type BookingService struct {
	bookings *database.BookingRepository
	cars     *database.CarRepository
	offers   *database.CarOfferRepository
	pricing  *PricingService
	logger   *logrus.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookings *database.BookingRepository,
	cars *database.CarRepository,
	offers *database.CarOfferRepository,
	pricing *PricingService,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		cars:     cars,
		offers:   offers,
		pricing:  pricing,
		logger:   logger,
	}
}

// CreateBooking prices and records a booking. The repository re-checks
// availability under a row lock, so a concurrent booking for the same
// car surfaces as database.ErrCarUnavailable rather than a double sale.
func (s *BookingService) CreateBooking(userID string, req *models.CreateBookingRequest, deviceInfo *string) (*models.Booking, *Quote, error) {
	start, end, err := req.Validate()
	if err != nil {
		return nil, nil, err
	}

	car, err := s.cars.GetByID(req.CarID)
	if err != nil {
		return nil, nil, database.ErrCarNotFound
	}

	offers, err := s.offers.GetByCarID(car.ID)
	if err != nil {
		return nil, nil, err
	}

	quote, err := s.pricing.CalculateBookingPrice(
		models.DurationType(req.DurationType), start, end, offers, time.Now())
	if err != nil {
		return nil, nil, err
	}

	booking := &models.Booking{
		ID:           uuid.New().String(),
		CarID:        car.ID,
		UserID:       userID,
		StoreID:      car.StoreID,
		StartDate:    start,
		EndDate:      end,
		DurationType: models.DurationType(req.DurationType),
		TotalPrice:   quote.Total,
		Status:       models.BookingStatusPending,
		Notes:        req.Notes,
		DeviceInfo:   deviceInfo,
	}

	if err := s.bookings.Create(booking); err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"car_id":     booking.CarID,
		"user_id":    booking.UserID,
		"total":      booking.TotalPrice,
	}).Info("Booking created")

	return booking, quote, nil
}

// GetBooking retrieves a booking visible to the given user. Customers
// see their own bookings; the store side is checked by store ID.
func (s *BookingService) GetBooking(id string) (*models.Booking, error) {
	return s.bookings.GetByID(id)
}

// ListUserBookings pages through a customer's bookings, newest first
func (s *BookingService) ListUserBookings(userID string, page, perPage int) (models.Page, error) {
	bookings, total, err := s.bookings.ListByUserID(userID, page, perPage)
	if err != nil {
		return models.Page{}, err
	}
	return models.NewPage(bookings, page, perPage, len(bookings), total), nil
}

// ListStoreBookings pages through the bookings against a store's cars
func (s *BookingService) ListStoreBookings(storeID string, page, perPage int) (models.Page, error) {
	bookings, total, err := s.bookings.ListByStoreID(storeID, page, perPage)
	if err != nil {
		return models.Page{}, err
	}
	return models.NewPage(bookings, page, perPage, len(bookings), total), nil
}

// UpdateStatus moves a booking along its lifecycle, rejecting illegal
// transitions before touching the database.
func (s *BookingService) UpdateStatus(id string, target models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(id, target); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": id,
		"from":       booking.Status,
		"to":         target,
	}).Info("Booking status updated")

	booking.Status = target
	return booking, nil
}

// CancelBooking cancels a customer's own booking while it is still
// pending or confirmed.
func (s *BookingService) CancelBooking(id, userID string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}

	if !booking.CanBeCancelled() {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(id, models.BookingStatusCancelled); err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCancelled
	return booking, nil
}

// SweepLifecycle advances bookings whose dates have passed: confirmed
// bookings whose start date arrived become active, active bookings whose
// end date passed become completed. Run from the cron scheduler.
func (s *BookingService) SweepLifecycle(now time.Time) error {
	activated, err := s.bookings.ActivateDueBookings(now)
	if err != nil {
		return err
	}

	completed, err := s.bookings.CompleteFinishedBookings(now)
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"activated": activated,
		"completed": completed,
	}).Info("Booking lifecycle sweep finished")

	return nil
}
