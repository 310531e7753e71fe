package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivehub/rental-backend/internal/database"
	"github.com/drivehub/rental-backend/internal/middleware"
	"github.com/drivehub/rental-backend/internal/models"
	"github.com/drivehub/rental-backend/internal/services"
	"github.com/drivehub/rental-backend/internal/utils"
)

// BookingHandler exposes the booking lifecycle endpoints
type BookingHandler struct {
	bookingSvc *services.BookingService
	storeRepo  *database.StoreRepository
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingSvc *services.BookingService, storeRepo *database.StoreRepository) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, storeRepo: storeRepo}
}

// CreateBooking books a car for a date range
// POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	// Device summary kept with the booking for support follow-ups
	var deviceInfo *string
	if ua := c.GetHeader("User-Agent"); ua != "" {
		summary := utils.ParseUserAgent(ua).Summary()
		deviceInfo = &summary
	}

	booking, quote, err := h.bookingSvc.CreateBooking(userCtx.UserID, &req, deviceInfo)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrCarUnavailable):
			middleware.BookingConflicts.Inc()
			conflict(c, "Car is not available for the selected dates")
		case errors.Is(err, database.ErrCarNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "car not found"})
		default:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		}
		return
	}

	middleware.BookingsCreated.WithLabelValues(string(booking.DurationType)).Inc()

	c.JSON(http.StatusCreated, gin.H{
		"booking": booking,
		"quote":   quote,
	})
}

// ListMyBookings pages through the caller's bookings
// GET /api/v1/bookings
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)
	page, perPage := parsePagination(c)

	result, err := h.bookingSvc.ListUserBookings(userCtx.UserID, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBooking returns one booking, visible to the booking customer or
// the owner of the store it was placed against
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	booking, err := h.bookingSvc.GetBooking(c.Param("id"))
	if err != nil {
		notFoundOr500(c, err, "booking")
		return
	}

	if booking.UserID != userCtx.UserID && !h.ownsStore(userCtx.UserID, booking.StoreID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to view this booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateStatus moves a booking along its lifecycle. Only the owner of
// the store the booking was placed against may drive transitions.
// PATCH /api/v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	target := models.BookingStatus(req.Status)
	switch target {
	case models.BookingStatusConfirmed, models.BookingStatusActive,
		models.BookingStatusCompleted, models.BookingStatusCancelled:
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid status"})
		return
	}

	booking, err := h.bookingSvc.GetBooking(c.Param("id"))
	if err != nil {
		notFoundOr500(c, err, "booking")
		return
	}

	if !h.ownsStore(userCtx.UserID, booking.StoreID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to manage this booking"})
		return
	}

	updated, err := h.bookingSvc.UpdateStatus(booking.ID, target)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			conflict(c, "Booking cannot move from "+string(booking.Status)+" to "+string(target))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// CancelBooking cancels the caller's own pending or confirmed booking
// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	booking, err := h.bookingSvc.CancelBooking(c.Param("id"), userCtx.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotBookingOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to cancel this booking"})
		case errors.Is(err, services.ErrInvalidTransition):
			conflict(c, "Booking can no longer be cancelled")
		default:
			notFoundOr500(c, err, "booking")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ownsStore reports whether userID owns the given store
func (h *BookingHandler) ownsStore(userID, storeID string) bool {
	store, err := h.storeRepo.GetByOwnerID(userID)
	if err != nil {
		return false
	}
	return store.ID == storeID
}
