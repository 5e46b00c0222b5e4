package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"clinic/internal/pkg/storage"
)

const MaxFileSize = 10 * 1024 * 1024 // 10 MB

// AllowedMimeTypes defines which file types are accepted
var AllowedMimeTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Service stores dashboard media (doctor photos, blog covers) in the
// configured object storage.
type Service struct {
	store storage.Storage
}

func NewService(store storage.Storage) *Service {
	return &Service{store: store}
}

// Upload sniffs the content type, then stores the file under
// folder/<uuid><ext>.
func (s *Service) Upload(ctx context.Context, folder string, fh *multipart.FileHeader) (*storage.Object, error) {
	if fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fh.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Detect MIME type from first 512 bytes
	buf := make([]byte, 512)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	ext, ok := AllowedMimeTypes[mimeType]
	if !ok {
		return nil, ErrInvalidMimeType
	}

	key := uuid.NewString() + ext
	if folder = strings.Trim(folder, "/ "); folder != "" {
		if _, err := storage.CleanKey(folder); err != nil {
			return nil, ErrInvalidFolder
		}
		key = path.Join(folder, key)
	}

	body := io.MultiReader(bytes.NewReader(buf[:n]), file)
	obj, err := s.store.Put(ctx, key, body, fh.Size, mimeType)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			return nil, ErrInvalidFolder
		}
		return nil, fmt.Errorf("store file: %w", err)
	}
	return obj, nil
}

func (s *Service) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	objs, err := s.store.List(ctx, prefix)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			return nil, ErrInvalidFolder
		}
		return nil, fmt.Errorf("list files: %w", err)
	}
	return objs, nil
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidPath):
			return ErrNotFound
		}
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
