package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"clinic/internal/config"
)

var (
	ErrNotFound    = errors.New("object not found")
	ErrInvalidPath = errors.New("invalid object path")
)

// Object is what the storage knows about a stored file. Content is never
// inspected.
type Object struct {
	Path        string    `json:"path"`
	URL         string    `json:"url"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// Storage is an opaque object store keyed by slash separated paths.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Object, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Object, error)
}

// New creates the backend selected by cfg.Type.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "s3":
		return NewS3Storage(cfg.S3, cfg.PublicURL)
	case "local", "":
		return NewLocalStorage(cfg.LocalDir, cfg.PublicURL)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// CleanKey normalizes key and rejects anything that would leave the root.
func CleanKey(key string) (string, error) {
	key = strings.ReplaceAll(strings.TrimSpace(key), "\\", "/")
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

// cleanPrefix is CleanKey for list prefixes, where empty means everything.
func cleanPrefix(prefix string) (string, error) {
	if strings.Trim(prefix, "/ ") == "" {
		return "", nil
	}
	return CleanKey(prefix)
}
