package history

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthspeak/healthspeak/internal/platform/respond"
	"github.com/healthspeak/healthspeak/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/history", h.Get)
	e.POST("/history", h.Create)
	e.PUT("/history", h.Update)
	e.DELETE("/history", h.Delete)
	e.GET("/history/backup", h.Backup)
	e.POST("/history/restore", h.Restore)
}

// Get dispatches on query parameters: id fetches a single record, stats=true
// returns aggregate counts, q searches, and the bare path lists newest-first.
func (h *Handler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	if id := c.QueryParam("id"); id != "" {
		item, err := h.svc.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return respond.NewNotFoundError("history item not found")
		}
		if err != nil {
			return respond.NewStorageError("failed to load history item", err)
		}
		return respond.OK(c, http.StatusOK, item)
	}

	if c.QueryParam("stats") == "true" {
		stats, err := h.svc.Stats(ctx)
		if err != nil {
			return err
		}
		return respond.OK(c, http.StatusOK, stats)
	}

	pg := pagination.FromContext(c)

	if q := c.QueryParam("q"); q != "" {
		items, err := h.svc.Search(ctx, q, pg.Limit)
		if err != nil {
			return err
		}
		return respond.OK(c, http.StatusOK, items)
	}

	items, total, err := h.svc.List(ctx, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Create(c echo.Context) error {
	var item Item
	if err := c.Bind(&item); err != nil {
		return respond.NewValidationError("malformed request body", err.Error())
	}
	created, err := h.svc.Add(c.Request().Context(), &item)
	if err != nil {
		return err
	}
	return respond.OKMessage(c, http.StatusCreated, created, "history item saved")
}

type updateRequest struct {
	ID string `json:"id"`
	Patch
}

func (h *Handler) Update(c echo.Context) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return respond.NewValidationError("malformed request body", err.Error())
	}
	if req.ID == "" {
		return respond.NewValidationError("invalid history update", "id is required")
	}
	item, err := h.svc.Update(c.Request().Context(), req.ID, req.Patch)
	if errors.Is(err, ErrNotFound) {
		return respond.NewNotFoundError("history item not found")
	}
	if err != nil {
		var se *respond.StorageError
		var ve *respond.ValidationError
		if errors.As(err, &se) || errors.As(err, &ve) {
			return err
		}
		return respond.NewStorageError("failed to update history item", err)
	}
	return respond.OKMessage(c, http.StatusOK, item, "history item updated")
}

func (h *Handler) Delete(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return respond.NewValidationError("invalid delete request", "id is required")
	}
	removed, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return respond.NewStorageError("failed to delete history item", err)
	}
	if !removed {
		return respond.NewNotFoundError("history item not found")
	}
	return respond.OKMessage(c, http.StatusOK, map[string]string{"id": id}, "history item deleted")
}

func (h *Handler) Backup(c echo.Context) error {
	items, err := h.svc.Backup(c.Request().Context())
	if err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, map[string]interface{}{
		"count":   len(items),
		"records": items,
	})
}

type restoreRequest struct {
	Records []*Item `json:"records"`
}

func (h *Handler) Restore(c echo.Context) error {
	var req restoreRequest
	if err := c.Bind(&req); err != nil {
		return respond.NewValidationError("malformed request body", err.Error())
	}
	if len(req.Records) == 0 {
		return respond.NewValidationError("invalid restore request", "records must not be empty")
	}
	res := h.svc.Restore(c.Request().Context(), req.Records)
	status := http.StatusOK
	if !res.Success {
		// Partial success is reported, not rolled back.
		status = http.StatusMultiStatus
	}
	return respond.OK(c, status, res)
}
