package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jagrati-dev/jagrati-api/internal/service"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
	"github.com/jagrati-dev/jagrati-api/pkg/response"
)

// DashboardHandler exposes the programme dashboard.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Stats godoc
// @Summary Programme-wide dashboard statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
