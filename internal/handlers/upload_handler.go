package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/drivehub/rental-backend/internal/middleware"
	"github.com/drivehub/rental-backend/internal/storage"
)

// Upload limits
const maxUploadBytes = 10 << 20 // 10 MiB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadHandler accepts car image uploads and stores them through the
// configured storage backend. Files land under a per-user prefix and
// the handler returns the public URL to put in image_urls.
type UploadHandler struct {
	backend storage.Backend
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(backend storage.Backend) *UploadHandler {
	return &UploadHandler{backend: backend}
}

// Upload stores a single multipart file under the field "file"
// POST /api/v1/uploads
func (h *UploadHandler) Upload(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "file field is required"})
		return
	}

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "file exceeds the 10MB limit"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		// Fall back to the filename extension for clients that omit the type
		ext = strings.ToLower(path.Ext(header.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "only jpeg, png and webp images are accepted"})
			return
		}
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	key := "cars/" + userCtx.UserID + "/" + uuid.New().String() + ext

	url, err := h.backend.Save(key, contentType, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"key": key,
		"url": url,
	})
}
