package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jagrati-dev/jagrati-api/internal/service"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
	"github.com/jagrati-dev/jagrati-api/pkg/response"
)

// ExportHandler exposes attendance register exports.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

type generateExportRequest struct {
	ClassID string `json:"class_id" binding:"required"`
	From    string `json:"from" binding:"required"`
	To      string `json:"to" binding:"required"`
	Format  string `json:"format" binding:"omitempty,oneof=csv pdf"`
}

// Generate godoc
// @Summary Generate an attendance register export
// @Description Renders a CSV or PDF register and returns a signed download link.
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body generateExportRequest true "Export payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /exports/attendance [post]
func (h *ExportHandler) Generate(c *gin.Context) {
	var req generateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	from, err := time.Parse(dateLayout, req.From)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from must be formatted YYYY-MM-DD"))
		return
	}
	to, err := time.Parse(dateLayout, req.To)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "to must be formatted YYYY-MM-DD"))
		return
	}
	format := service.ExportFormatCSV
	if req.Format != "" {
		format = service.ExportFormat(req.Format)
	}

	result, err := h.service.GenerateAttendanceRegister(c.Request.Context(), req.ClassID, from, to, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Download godoc
// @Summary Download a generated export
// @Description Streams the file behind a signed, expiring token. No session required.
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Router /exports/download/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, err := h.service.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	name := filepath.Base(file.Name())
	contentType := "text/csv"
	if filepath.Ext(name) == ".pdf" {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", contentType)
	http.ServeContent(c.Writer, c.Request, name, time.Time{}, file)
}
