package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/healthspeak/healthspeak/internal/platform/respond"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := []byte("fake png bytes")
	meta, err := store.Put(ctx, "rx.png", "image/png", payload)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if meta.ID == "" || meta.URL != "/images/"+meta.ID {
		t.Errorf("meta = %+v", meta)
	}
	if meta.Size != int64(len(payload)) {
		t.Errorf("size = %d, want %d", meta.Size, len(payload))
	}

	got, reader, err := store.Get(ctx, meta.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FileName != "rx.png" || got.ContentType != "image/png" {
		t.Errorf("metadata = %+v", got)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("data = %q, want %q", data, payload)
	}
}

func TestMemoryStoreCopiesData(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := []byte("original")
	meta, err := store.Put(ctx, "rx.png", "image/png", payload)
	if err != nil {
		t.Fatal(err)
	}
	payload[0] = 'X'

	_, reader, err := store.Get(ctx, meta.ID)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(reader)
	if string(data) != "original" {
		t.Errorf("stored bytes aliased caller slice: %q", data)
	}
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemoryStore()
	_, _, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("got %v, want ErrImageNotFound", err)
	}
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	meta, err := store.Put(ctx, "rx.png", "image/png", []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	removed, err := store.Delete(ctx, meta.ID)
	if err != nil || !removed {
		t.Fatalf("first delete: %v %v", removed, err)
	}
	removed, err = store.Delete(ctx, meta.ID)
	if err != nil || removed {
		t.Fatalf("second delete: %v %v, want false,nil", removed, err)
	}
}

func newTestServer() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = respond.HTTPErrorHandler(zerolog.Nop(), false)
	NewHandler(NewMemoryStore(), 5).RegisterRoutes(e)
	return e
}

func multipartImage(t *testing.T, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+fileName+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return body, w.FormDataContentType()
}

func TestUploadAndDownload(t *testing.T) {
	e := newTestServer()

	payload := []byte("fake image bytes")
	body, contentType := multipartImage(t, "rx.png", "image/png", payload)
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Data ImageMetadata `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.ID == "" {
		t.Fatal("missing image id")
	}

	req = httptest.NewRequest(http.MethodGet, env.Data.URL, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("download status = %d", rec.Code)
	}
	if !bytes.Equal(rec.Body.Bytes(), payload) {
		t.Errorf("downloaded %q, uploaded %q", rec.Body.Bytes(), payload)
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != "image/png" {
		t.Errorf("content type = %q", got)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	e := newTestServer()

	body, contentType := multipartImage(t, "doc.pdf", "application/pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadRequiresImageField(t *testing.T) {
	e := newTestServer()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDownloadUnknownImage(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/images/does-not-exist", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteImage(t *testing.T) {
	e := newTestServer()

	body, contentType := multipartImage(t, "rx.png", "image/png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d", rec.Code)
	}
	var env struct {
		Data ImageMetadata `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}

	req = httptest.NewRequest(http.MethodDelete, "/images/"+env.Data.ID, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/images/"+env.Data.ID, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}
