package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/pkg/export"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
	"github.com/ec-club-bing/website/pkg/response"
)

const defaultAuditLimit = 50

type auditReader interface {
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// AuditHandler lists recent admin actions.
type AuditHandler struct {
	repo auditReader
}

func NewAuditHandler(repo auditReader) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List godoc
// @Summary Recent admin actions
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries (default 50, max 200)"
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /admin/audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	logs, err := h.recent(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, gin.H{"count": len(logs)})
}

// Export godoc
// @Summary Download recent admin actions
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Param limit query int false "Maximum entries (default 50, max 200)"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/audit-logs/export [get]
func (h *AuditHandler) Export(c *gin.Context) {
	format := export.Format(c.DefaultQuery("format", string(export.FormatCSV)))
	contentType := format.ContentType()
	if contentType == "" {
		response.Error(c, appErrors.Validation("invalid format", []appErrors.FieldError{
			{Field: "format", Message: "Format must be csv or pdf."},
		}))
		return
	}

	logs, err := h.recent(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, auditTable(logs)); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export"))
		return
	}
	filename := fmt.Sprintf("audit-logs-%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *AuditHandler) recent(c *gin.Context) ([]models.AuditLog, error) {
	limit := defaultAuditLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 200 {
		limit = 200
	}

	logs, err := h.repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message)
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	return logs, nil
}

func auditTable(logs []models.AuditLog) export.Table {
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			l.CreatedAt.UTC().Format(time.RFC3339),
			l.Actor,
			l.Action,
			l.Resource,
			l.ResourceID,
			fmt.Sprintf("%s %s", l.Method, l.Path),
			strconv.Itoa(l.Status),
			l.IPAddress,
		})
	}
	return export.Table{
		Title:   "Admin activity",
		Columns: []string{"When", "Actor", "Action", "Resource", "Resource ID", "Request", "Status", "IP"},
		Rows:    rows,
	}
}
