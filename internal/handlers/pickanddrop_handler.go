package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/drivehub/rental-backend/internal/middleware"
	"github.com/drivehub/rental-backend/internal/models"
	"github.com/drivehub/rental-backend/internal/services"
)

// PickAndDropHandler exposes the ride-share search and driver CRUD
type PickAndDropHandler struct {
	svc *services.PickAndDropService
}

// NewPickAndDropHandler creates a new PickAndDropHandler
func NewPickAndDropHandler(svc *services.PickAndDropService) *PickAndDropHandler {
	return &PickAndDropHandler{svc: svc}
}

// Search runs the public search. departure_time is matched within an
// hour either side of the requested clock time.
// GET /api/v1/pick-and-drop
func (h *PickAndDropHandler) Search(c *gin.Context) {
	page, perPage := parsePagination(c)

	filter := models.PickAndDropFilter{
		StartLocation: c.Query("start_location"),
		EndLocation:   c.Query("end_location"),
		DriverGender:  c.Query("driver_gender"),
		DepartureDate: c.Query("departure_date"),
		DepartureTime: c.Query("departure_time"),
		Page:          page,
		PerPage:       perPage,
	}
	if v := c.Query("min_spaces"); v != "" {
		filter.MinSpaces, _ = strconv.Atoi(v)
	}

	result, err := h.svc.Search(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search services"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one service with its ordered stops
// GET /api/v1/pick-and-drop/:id
func (h *PickAndDropHandler) Get(c *gin.Context) {
	service, err := h.svc.Get(c.Param("id"))
	if err != nil {
		notFoundOr500(c, err, "service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// Create publishes a new service under the caller
// POST /api/v1/pick-and-drop
func (h *PickAndDropHandler) Create(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreatePickAndDropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	service, err := h.svc.Publish(userCtx.UserID, &req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, service)
}

// Update rewrites a service the caller owns. The posted stop list
// replaces the existing one wholesale.
// PUT /api/v1/pick-and-drop/:id
func (h *PickAndDropHandler) Update(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreatePickAndDropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	service, err := h.svc.Update(c.Param("id"), userCtx.UserID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotServiceOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to manage this service"})
			return
		}
		notFoundOr500(c, err, "service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// Delete removes a service the caller owns
// DELETE /api/v1/pick-and-drop/:id
func (h *PickAndDropHandler) Delete(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	if err := h.svc.Delete(c.Param("id"), userCtx.UserID); err != nil {
		if errors.Is(err, services.ErrNotServiceOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to manage this service"})
			return
		}
		notFoundOr500(c, err, "service")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

// MyServices pages through the caller's own services, newest first
// GET /api/v1/pick-and-drop/my-services
func (h *PickAndDropHandler) MyServices(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)
	page, perPage := parsePagination(c)

	result, err := h.svc.MyServices(userCtx.UserID, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, result)
}
