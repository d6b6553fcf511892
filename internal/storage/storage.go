// Package storage persists uploaded post images. Object names live under the
// posts/ prefix regardless of backend.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/d60-Lab/inkwell/config"
)

// Store writes an uploaded image and returns its object path.
type Store interface {
	SaveImage(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
}

// New selects the backend from configuration.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Media.Backend {
	case "local":
		return NewLocalStore(cfg.Media.Dir)
	case "minio":
		return NewMinioStore(cfg.Media)
	default:
		return nil, fmt.Errorf("unsupported media backend %q", cfg.Media.Backend)
	}
}

// objectName builds posts/<uuid><ext> from the client-supplied filename.
// Only the extension survives; the rest of the name is untrusted.
func objectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return "posts/" + uuid.New().String() + ext
}
