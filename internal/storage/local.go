package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalBackend stores uploads on the local filesystem and serves them
// from a static route.
type LocalBackend struct {
	dir       string
	publicURL string
}

// NewLocalBackend creates the upload directory and returns the backend
func NewLocalBackend(dir, publicURL string) (*LocalBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalBackend{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Save writes the file under key and returns its public URL
func (b *LocalBackend) Save(key string, contentType string, r io.Reader) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	path := filepath.Join(b.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file %s: %w", key, err)
	}

	return b.URL(key), nil
}

// Delete removes the file stored under key
func (b *LocalBackend) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	path := filepath.Join(b.dir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", key, err)
	}
	return nil
}

// URL returns the public URL for a stored key
func (b *LocalBackend) URL(key string) string {
	return b.publicURL + "/" + key
}

// Dir returns the root directory uploads are written to, for serving
// static files.
func (b *LocalBackend) Dir() string {
	return b.dir
}

// validateKey rejects keys that escape the upload directory
func validateKey(key string) error {
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return fmt.Errorf("invalid storage key: %q", key)
	}
	return nil
}
