package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Default and maximum page sizes for list endpoints
const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// conflict writes the uniform business-rule failure body. Every rule
// violation (unavailable car, illegal transition, ownership) uses 409
// with this shape so clients have one branch to handle.
func conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, gin.H{
		"success": false,
		"message": message,
	})
}

// notFoundOr500 maps a repository error to 404 when the row is missing,
// 500 otherwise.
func notFoundOr500(c *gin.Context, err error, resource string) {
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch " + resource})
}

// parsePagination reads page/per_page query params with sane bounds
func parsePagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return page, perPage
}
