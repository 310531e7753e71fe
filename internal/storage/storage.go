package storage

import (
	"fmt"
	"io"

	"github.com/drivehub/rental-backend/internal/config"
)

// Backend abstracts where uploaded car images live. A cloud backend
// (S3 or similar) can be added behind this interface without touching
// the upload handler.
type Backend interface {
	// Save writes the file under key and returns its public URL
	Save(key string, contentType string, r io.Reader) (string, error)

	// Delete removes the file stored under key
	Delete(key string) error

	// URL returns the public URL for a stored key
	URL(key string) string
}

// New builds the backend selected by configuration
func New(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case "local":
		return NewLocalBackend(cfg.LocalDir, cfg.PublicURL)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
