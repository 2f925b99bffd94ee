package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/bookstore-api/internal/core/domain"
	"github.com/bookvault/bookstore-api/internal/core/ports"
)

// AuditHandler exposes the catalog audit trail to admins.
type AuditHandler struct {
	service ports.AuditQueryService
}

func NewAuditHandler(service ports.AuditQueryService) *AuditHandler {
	return &AuditHandler{service: service}
}

type auditListResponse struct {
	ISBN    string              `json:"isbn"`
	Entries []domain.AuditEntry `json:"entries"`
}

// ListByISBN handles GET /v1/audit/:isbn.
//
// @Summary      List audit entries for a book
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        isbn   path      string  true   "ISBN (any accepted format)"
// @Param        limit  query     int     false  "Maximum entries (default 100)"
// @Success      200    {object}  auditListResponse
// @Failure      400    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /v1/audit/{isbn} [get]
func (h *AuditHandler) ListByISBN(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.service.ListByISBN(c.Request().Context(), c.Param("isbn"), limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}

	isbn, _ := domain.NormalizeISBN(c.Param("isbn"))
	return c.JSON(http.StatusOK, auditListResponse{ISBN: isbn, Entries: entries})
}
