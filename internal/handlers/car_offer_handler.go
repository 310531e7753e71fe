package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivehub/rental-backend/internal/database"
	"github.com/drivehub/rental-backend/internal/middleware"
	"github.com/drivehub/rental-backend/internal/models"
)

// CarOfferHandler exposes offer CRUD for store owners
type CarOfferHandler struct {
	offerRepo *database.CarOfferRepository
	carRepo   *database.CarRepository
	storeRepo *database.StoreRepository
}

// NewCarOfferHandler creates a new CarOfferHandler
func NewCarOfferHandler(offerRepo *database.CarOfferRepository, carRepo *database.CarRepository, storeRepo *database.StoreRepository) *CarOfferHandler {
	return &CarOfferHandler{
		offerRepo: offerRepo,
		carRepo:   carRepo,
		storeRepo: storeRepo,
	}
}

// ListByCar returns all offers on a car
// GET /api/v1/cars/:id/offers
func (h *CarOfferHandler) ListByCar(c *gin.Context) {
	offers, err := h.offerRepo.GetByCarID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch offers"})
		return
	}

	c.JSON(http.StatusOK, offers)
}

// Create attaches an offer to a car in the owner's store
// POST /api/v1/car-offers
func (h *CarOfferHandler) Create(c *gin.Context) {
	var req models.CreateCarOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if !h.ownsCar(c, req.CarID) {
		return
	}

	offer, err := h.offerRepo.Create(&req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, offer)
}

// Update modifies an offer on a car in the owner's store
// PUT /api/v1/car-offers/:id
func (h *CarOfferHandler) Update(c *gin.Context) {
	offer, ok := h.requireOwnedOffer(c)
	if !ok {
		return
	}

	var req models.UpdateCarOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.offerRepo.Update(offer.ID, &req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.offerRepo.GetByID(offer.ID)
	if err != nil {
		notFoundOr500(c, err, "offer")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete removes an offer on a car in the owner's store
// DELETE /api/v1/car-offers/:id
func (h *CarOfferHandler) Delete(c *gin.Context) {
	offer, ok := h.requireOwnedOffer(c)
	if !ok {
		return
	}

	if err := h.offerRepo.Delete(offer.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete offer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Offer deleted"})
}

func (h *CarOfferHandler) requireOwnedOffer(c *gin.Context) (*models.CarOffer, bool) {
	offer, err := h.offerRepo.GetByID(c.Param("id"))
	if err != nil {
		notFoundOr500(c, err, "offer")
		return nil, false
	}

	if !h.ownsCar(c, offer.CarID) {
		return nil, false
	}

	return offer, true
}

// ownsCar verifies the car belongs to the caller's store, writing the
// error response when it does not
func (h *CarOfferHandler) ownsCar(c *gin.Context, carID string) bool {
	userCtx := middleware.MustGetUserContext(c)

	store, err := h.storeRepo.GetByOwnerID(userCtx.UserID)
	if err != nil {
		notFoundOr500(c, err, "store")
		return false
	}

	car, err := h.carRepo.GetByID(carID)
	if err != nil {
		notFoundOr500(c, err, "car")
		return false
	}

	if car.StoreID != store.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to manage offers on this car"})
		return false
	}

	return true
}
