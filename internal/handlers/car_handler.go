package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drivehub/rental-backend/internal/database"
	"github.com/drivehub/rental-backend/internal/middleware"
	"github.com/drivehub/rental-backend/internal/models"
	"github.com/drivehub/rental-backend/internal/services"
)

// CarHandler exposes the public catalog and the owner's car CRUD
type CarHandler struct {
	listingSvc      *services.ListingService
	availabilitySvc *services.AvailabilityService
	carRepo         *database.CarRepository
	storeRepo       *database.StoreRepository
}

// NewCarHandler creates a new CarHandler
func NewCarHandler(
	listingSvc *services.ListingService,
	availabilitySvc *services.AvailabilityService,
	carRepo *database.CarRepository,
	storeRepo *database.StoreRepository,
) *CarHandler {
	return &CarHandler{
		listingSvc:      listingSvc,
		availabilitySvc: availabilitySvc,
		carRepo:         carRepo,
		storeRepo:       storeRepo,
	}
}

// ListCars searches the public catalog
// GET /api/v1/cars
func (h *CarHandler) ListCars(c *gin.Context) {
	page, perPage := parsePagination(c)

	filter := models.CarFilter{
		Brand:        c.Query("brand"),
		Type:         c.Query("type"),
		CityID:       c.Query("city_id"),
		StoreID:      c.Query("store_id"),
		Transmission: c.Query("transmission"),
		FuelType:     c.Query("fuel_type"),
		Page:         page,
		PerPage:      perPage,
	}
	if v := c.Query("min_seats"); v != "" {
		filter.MinSeats, _ = strconv.Atoi(v)
	}
	if v := c.Query("max_price"); v != "" {
		filter.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}

	result, err := h.listingSvc.SearchCars(filter, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search cars"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCar returns a single formatted listing
// GET /api/v1/cars/:id
func (h *CarHandler) GetCar(c *gin.Context) {
	listing, err := h.listingSvc.GetCar(c.Param("id"), time.Now())
	if err != nil {
		notFoundOr500(c, err, "car")
		return
	}

	c.JSON(http.StatusOK, listing)
}

// CheckAvailability reports whether a car is free for a date range
// GET /api/v1/cars/:id/availability
func (h *CarHandler) CheckAvailability(c *gin.Context) {
	car, err := h.carRepo.GetByID(c.Param("id"))
	if err != nil {
		notFoundOr500(c, err, "car")
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid start_date: must be RFC 3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid end_date: must be RFC 3339"})
		return
	}
	if !start.Before(end) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "start_date must be before end_date"})
		return
	}

	available, err := h.availabilitySvc.IsCarAvailable(car.ID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"car_id":     car.ID,
		"start_date": start,
		"end_date":   end,
		"available":  available,
	})
}

// CreateCar lists a new car under the owner's store
// POST /api/v1/cars
func (h *CarHandler) CreateCar(c *gin.Context) {
	store, ok := h.requireStore(c)
	if !ok {
		return
	}

	var req models.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	car, err := h.carRepo.Create(store.ID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create car"})
		return
	}

	c.JSON(http.StatusCreated, car)
}

// UpdateCar updates a car in the owner's store
// PUT /api/v1/cars/:id
func (h *CarHandler) UpdateCar(c *gin.Context) {
	car, ok := h.requireOwnedCar(c)
	if !ok {
		return
	}

	var req models.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.carRepo.Update(car.ID, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update car"})
		return
	}

	updated, err := h.carRepo.GetByID(car.ID)
	if err != nil {
		notFoundOr500(c, err, "car")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCar removes a car from the owner's store
// DELETE /api/v1/cars/:id
func (h *CarHandler) DeleteCar(c *gin.Context) {
	car, ok := h.requireOwnedCar(c)
	if !ok {
		return
	}

	if err := h.carRepo.Delete(car.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete car"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Car deleted"})
}

// MyCars lists the owner's cars with catalog formatting
// GET /api/v1/stores/my-store/cars
func (h *CarHandler) MyCars(c *gin.Context) {
	store, ok := h.requireStore(c)
	if !ok {
		return
	}

	listings, err := h.listingSvc.ListStoreCars(store.ID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cars"})
		return
	}

	c.JSON(http.StatusOK, listings)
}

// requireStore loads the caller's store or writes the error response
func (h *CarHandler) requireStore(c *gin.Context) (*models.Store, bool) {
	userCtx := middleware.MustGetUserContext(c)

	store, err := h.storeRepo.GetByOwnerID(userCtx.UserID)
	if err != nil {
		notFoundOr500(c, err, "store")
		return nil, false
	}

	return store, true
}

// requireOwnedCar loads the car in :id and verifies it belongs to the
// caller's store
func (h *CarHandler) requireOwnedCar(c *gin.Context) (*models.Car, bool) {
	store, ok := h.requireStore(c)
	if !ok {
		return nil, false
	}

	car, err := h.carRepo.GetByID(c.Param("id"))
	if err != nil {
		notFoundOr500(c, err, "car")
		return nil, false
	}

	if car.StoreID != store.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to manage this car"})
		return nil, false
	}

	return car, true
}
