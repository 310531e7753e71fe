package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivehub/rental-backend/internal/database"
	"github.com/drivehub/rental-backend/internal/middleware"
	"github.com/drivehub/rental-backend/internal/models"
	"github.com/drivehub/rental-backend/internal/services"
)

// StoreHandler exposes store registration and the owner dashboard
type StoreHandler struct {
	storeRepo  *database.StoreRepository
	bookingSvc *services.BookingService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeRepo *database.StoreRepository, bookingSvc *services.BookingService) *StoreHandler {
	return &StoreHandler{storeRepo: storeRepo, bookingSvc: bookingSvc}
}

// Create registers a store for the caller. One store per owner.
// POST /api/v1/stores
func (h *StoreHandler) Create(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if existing, err := h.storeRepo.GetByOwnerID(userCtx.UserID); err == nil && existing != nil {
		conflict(c, "You already have a registered store")
		return
	}

	store, err := h.storeRepo.Create(userCtx.UserID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create store"})
		return
	}

	c.JSON(http.StatusCreated, store)
}

// GetPublic returns a store's public profile
// GET /api/v1/stores/:id
func (h *StoreHandler) GetPublic(c *gin.Context) {
	store, err := h.storeRepo.GetByID(c.Param("id"))
	if err != nil {
		notFoundOr500(c, err, "store")
		return
	}

	c.JSON(http.StatusOK, store.Summary())
}

// MyStore returns the caller's store
// GET /api/v1/stores/my-store
func (h *StoreHandler) MyStore(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	store, err := h.storeRepo.GetByOwnerID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found", "message": "Register a store first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch store"})
		return
	}

	c.JSON(http.StatusOK, store)
}

// Update changes the caller's store details
// PUT /api/v1/stores/my-store
func (h *StoreHandler) Update(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	store, err := h.storeRepo.GetByOwnerID(userCtx.UserID)
	if err != nil {
		notFoundOr500(c, err, "store")
		return
	}

	var req models.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.storeRepo.Update(store.ID, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update store"})
		return
	}

	updated, err := h.storeRepo.GetByID(store.ID)
	if err != nil {
		notFoundOr500(c, err, "store")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// MyStoreBookings pages through bookings placed against the caller's store
// GET /api/v1/stores/my-store/bookings
func (h *StoreHandler) MyStoreBookings(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)
	page, perPage := parsePagination(c)

	store, err := h.storeRepo.GetByOwnerID(userCtx.UserID)
	if err != nil {
		notFoundOr500(c, err, "store")
		return
	}

	result, err := h.bookingSvc.ListStoreBookings(store.ID, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, result)
}
