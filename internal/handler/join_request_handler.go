package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	"github.com/jagrati-dev/jagrati-api/internal/service"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
	"github.com/jagrati-dev/jagrati-api/pkg/response"
)

// JoinRequestHandler exposes the volunteer onboarding workflow.
type JoinRequestHandler struct {
	service *service.JoinRequestService
}

// NewJoinRequestHandler constructs a join request handler.
func NewJoinRequestHandler(svc *service.JoinRequestService) *JoinRequestHandler {
	return &JoinRequestHandler{service: svc}
}

// Submit godoc
// @Summary Submit a join request
// @Description Public endpoint for prospective volunteers to apply.
// @Tags Join Requests
// @Accept json
// @Produce json
// @Param payload body service.SubmitJoinRequest true "Applicant payload"
// @Success 201 {object} response.Envelope
// @Router /join-requests [post]
func (h *JoinRequestHandler) Submit(c *gin.Context) {
	var req service.SubmitJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	jr, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, jr)
}

// List godoc
// @Summary List join requests
// @Tags Join Requests
// @Produce json
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /join-requests [get]
func (h *JoinRequestHandler) List(c *gin.Context) {
	var filter models.JoinRequestFilter
	if status := c.Query("status"); status != "" {
		s := models.JoinRequestStatus(status)
		filter.Status = &s
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	requests, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, pagination)
}

// Get godoc
// @Summary Get a join request
// @Tags Join Requests
// @Produce json
// @Param id path string true "Join request ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /join-requests/{id} [get]
func (h *JoinRequestHandler) Get(c *gin.Context) {
	jr, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jr, nil)
}

// Process godoc
// @Summary Approve or reject a join request
// @Description The decision is final. A second attempt on the same request returns 409.
// @Tags Join Requests
// @Accept json
// @Produce json
// @Param id path string true "Join request ID"
// @Param payload body service.ProcessJoinRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /join-requests/{id}/process [put]
func (h *JoinRequestHandler) Process(c *gin.Context) {
	var req service.ProcessJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.Process(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	detail := "Request rejected."
	if req.Action == service.ProcessActionApprove {
		detail = "Request approved."
	}
	response.JSON(c, http.StatusOK, response.Result{Success: true, Detail: detail}, nil)
}
