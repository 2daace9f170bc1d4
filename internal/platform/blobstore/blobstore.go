// Package blobstore stores uploaded prescription images. It defines the
// ImageStore interface, an in-memory implementation, and Echo handlers for
// multipart upload and download. Stored ids are referenced from history
// records via their imageUrl field.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthspeak/healthspeak/internal/platform/respond"
	"github.com/healthspeak/healthspeak/internal/sanitize"
)

var ErrImageNotFound = errors.New("image not found")

// ImageMetadata describes a stored prescription image.
type ImageMetadata struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ImageStore persists image bytes and their metadata.
type ImageStore interface {
	Put(ctx context.Context, fileName, contentType string, data []byte) (*ImageMetadata, error)
	Get(ctx context.Context, id string) (*ImageMetadata, io.Reader, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// MemoryStore is an in-memory ImageStore suitable for a single-process
// deployment; contents do not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]memoryBlob
}

type memoryBlob struct {
	meta ImageMetadata
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]memoryBlob)}
}

func (s *MemoryStore) Put(_ context.Context, fileName, contentType string, data []byte) (*ImageMetadata, error) {
	id := uuid.New().String()
	meta := ImageMetadata{
		ID:          id,
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		URL:         "/images/" + id,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[id] = memoryBlob{meta: meta, data: stored}
	return &meta, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*ImageMetadata, io.Reader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[id]
	if !ok {
		return nil, nil, ErrImageNotFound
	}
	meta := blob.meta
	return &meta, bytes.NewReader(blob.data), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[id]; !ok {
		return false, nil
	}
	delete(s.blobs, id)
	return true, nil
}

// Handler exposes the store over HTTP.
type Handler struct {
	store       ImageStore
	maxUploadMB int
}

func NewHandler(store ImageStore, maxUploadMB int) *Handler {
	return &Handler{store: store, maxUploadMB: maxUploadMB}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/images", h.Upload)
	e.GET("/images/:id", h.Download)
	e.DELETE("/images/:id", h.Delete)
}

// Upload accepts a multipart form with an "image" file field. Metadata is
// validated before any bytes are read into the store.
func (h *Handler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return respond.NewValidationError("invalid upload", "multipart field \"image\" is required")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	res := sanitize.ValidateFileUpload(fileHeader.Filename, contentType, fileHeader.Size, h.maxUploadMB)
	if !res.IsValid {
		return respond.NewValidationError("invalid upload", res.Errors...)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return respond.NewStorageError("failed to read upload", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, fileHeader.Size))
	if err != nil {
		return respond.NewStorageError("failed to read upload", err)
	}

	meta, err := h.store.Put(c.Request().Context(), fileHeader.Filename, contentType, data)
	if err != nil {
		return respond.NewStorageError("failed to store image", err)
	}

	if len(res.Warnings) > 0 {
		return respond.OKMessage(c, http.StatusCreated, meta, res.Warnings[0])
	}
	return respond.OK(c, http.StatusCreated, meta)
}

func (h *Handler) Download(c echo.Context) error {
	meta, reader, err := h.store.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrImageNotFound) {
		return respond.NewNotFoundError("image not found")
	}
	if err != nil {
		return respond.NewStorageError("failed to load image", err)
	}
	return c.Stream(http.StatusOK, meta.ContentType, reader)
}

func (h *Handler) Delete(c echo.Context) error {
	removed, err := h.store.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respond.NewStorageError("failed to delete image", err)
	}
	if !removed {
		return respond.NewNotFoundError("image not found")
	}
	return respond.OKMessage(c, http.StatusOK, nil, "image deleted")
}
