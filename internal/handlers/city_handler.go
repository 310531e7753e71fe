package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivehub/rental-backend/internal/database"
	"github.com/drivehub/rental-backend/internal/models"
	"github.com/drivehub/rental-backend/internal/services"
)

// CityHandler serves the city/area reference data, cached in Redis
// because the lists change rarely and back every location dropdown.
type CityHandler struct {
	cityRepo *database.CityRepository
	cache    *services.CacheService
}

// NewCityHandler creates a new CityHandler
func NewCityHandler(cityRepo *database.CityRepository, cache *services.CacheService) *CityHandler {
	return &CityHandler{cityRepo: cityRepo, cache: cache}
}

// ListCities returns all cities
// GET /api/v1/cities
func (h *CityHandler) ListCities(c *gin.Context) {
	var cities []models.City
	if h.cache.Get(c.Request.Context(), "cities", &cities) {
		c.JSON(http.StatusOK, cities)
		return
	}

	cities, err := h.cityRepo.ListCities()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cities"})
		return
	}

	h.cache.Set(c.Request.Context(), "cities", cities)
	c.JSON(http.StatusOK, cities)
}

// ListAreas returns the areas of one city
// GET /api/v1/cities/:id/areas
func (h *CityHandler) ListAreas(c *gin.Context) {
	cityID := c.Param("id")
	key := "areas:" + cityID

	var areas []models.Area
	if h.cache.Get(c.Request.Context(), key, &areas) {
		c.JSON(http.StatusOK, areas)
		return
	}

	areas, err := h.cityRepo.ListAreasByCity(cityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch areas"})
		return
	}

	h.cache.Set(c.Request.Context(), key, areas)
	c.JSON(http.StatusOK, areas)
}
