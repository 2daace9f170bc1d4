package medical

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthspeak/healthspeak/internal/platform/respond"
	"github.com/healthspeak/healthspeak/internal/sanitize"
)

// maxExpandLength bounds text submitted for abbreviation expansion.
const maxExpandLength = 10000

type Handler struct {
	table *Table
}

func NewHandler(table *Table) *Handler {
	return &Handler{table: table}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/medical/abbreviations/:code", h.GetAbbreviation)
	e.GET("/medical/drugs", h.GetDrugs)
	e.POST("/medical/expand", h.Expand)
}

func (h *Handler) GetAbbreviation(c echo.Context) error {
	code := sanitize.Clean(c.Param("code"))
	abbr := h.table.FindAbbreviation(code)
	if abbr == nil {
		return respond.NewNotFoundError("unknown abbreviation: " + code)
	}
	return respond.OK(c, http.StatusOK, abbr)
}

// GetDrugs serves both lookup styles: `name` does an exact match against
// canonical/generic/brand names, `q` does a substring search.
func (h *Handler) GetDrugs(c echo.Context) error {
	if name := sanitize.Clean(c.QueryParam("name")); name != "" {
		drug := h.table.FindDrug(name)
		if drug == nil {
			return respond.NewNotFoundError("unknown drug: " + name)
		}
		return respond.OK(c, http.StatusOK, drug)
	}

	q := sanitize.Clean(c.QueryParam("q"))
	if q == "" {
		return respond.NewValidationError("invalid drug search", "q or name query parameter is required")
	}
	return respond.OK(c, http.StatusOK, h.table.SearchDrugs(q))
}

type expandRequest struct {
	Text string `json:"text"`
}

func (h *Handler) Expand(c echo.Context) error {
	var req expandRequest
	if err := c.Bind(&req); err != nil {
		return respond.NewValidationError("malformed request body", err.Error())
	}
	if res := sanitize.ValidateText(req.Text, maxExpandLength); !res.IsValid {
		return respond.NewValidationError("invalid expansion text", res.Errors...)
	}
	expanded := h.table.ExpandAbbreviations(sanitize.Clean(req.Text))
	return respond.OK(c, http.StatusOK, map[string]string{
		"original": req.Text,
		"expanded": expanded,
	})
}
