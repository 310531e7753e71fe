package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivehub/rental-backend/internal/database"
	"github.com/drivehub/rental-backend/internal/middleware"
	"github.com/drivehub/rental-backend/internal/models"
)

// InquiryHandler exposes customer inquiries and the store-side inbox
type InquiryHandler struct {
	inquiryRepo *database.InquiryRepository
	storeRepo   *database.StoreRepository
}

// NewInquiryHandler creates a new InquiryHandler
func NewInquiryHandler(inquiryRepo *database.InquiryRepository, storeRepo *database.StoreRepository) *InquiryHandler {
	return &InquiryHandler{inquiryRepo: inquiryRepo, storeRepo: storeRepo}
}

// Create sends an inquiry to a store
// POST /api/v1/inquiries
func (h *InquiryHandler) Create(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.storeRepo.GetByID(req.StoreID); err != nil {
		notFoundOr500(c, err, "store")
		return
	}

	inquiry, err := h.inquiryRepo.Create(userCtx.UserID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inquiry"})
		return
	}

	c.JSON(http.StatusCreated, inquiry)
}

// ListMyStoreInquiries pages through the caller store's inbox
// GET /api/v1/stores/my-store/inquiries
func (h *InquiryHandler) ListMyStoreInquiries(c *gin.Context) {
	store, ok := h.requireStore(c)
	if !ok {
		return
	}

	page, perPage := parsePagination(c)

	inquiries, total, err := h.inquiryRepo.ListByStoreID(store.ID, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inquiries"})
		return
	}

	c.JSON(http.StatusOK, models.NewPage(inquiries, page, perPage, len(inquiries), total))
}

// Reply answers an inquiry in the caller store's inbox
// POST /api/v1/inquiries/:id/reply
func (h *InquiryHandler) Reply(c *gin.Context) {
	store, ok := h.requireStore(c)
	if !ok {
		return
	}

	inquiry, err := h.inquiryRepo.GetByID(c.Param("id"))
	if err != nil {
		notFoundOr500(c, err, "inquiry")
		return
	}

	if inquiry.StoreID != store.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to reply to this inquiry"})
		return
	}

	var req models.ReplyInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.inquiryRepo.Reply(inquiry.ID, req.Reply)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reply to inquiry"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Close marks an inquiry closed
// POST /api/v1/inquiries/:id/close
func (h *InquiryHandler) Close(c *gin.Context) {
	store, ok := h.requireStore(c)
	if !ok {
		return
	}

	inquiry, err := h.inquiryRepo.GetByID(c.Param("id"))
	if err != nil {
		notFoundOr500(c, err, "inquiry")
		return
	}

	if inquiry.StoreID != store.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to close this inquiry"})
		return
	}

	if err := h.inquiryRepo.UpdateStatus(inquiry.ID, models.InquiryStatusClosed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close inquiry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inquiry closed"})
}

func (h *InquiryHandler) requireStore(c *gin.Context) (*models.Store, bool) {
	userCtx := middleware.MustGetUserContext(c)

	store, err := h.storeRepo.GetByOwnerID(userCtx.UserID)
	if err != nil {
		notFoundOr500(c, err, "store")
		return nil, false
	}

	return store, true
}
