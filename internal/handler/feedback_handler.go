package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jagrati-dev/jagrati-api/internal/service"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
	"github.com/jagrati-dev/jagrati-api/pkg/response"
)

// FeedbackHandler exposes class and student feedback endpoints.
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler constructs a feedback handler.
func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// CreateClassFeedback godoc
// @Summary Record class feedback
// @Description Broadcasts the observation to all staff.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body service.ClassFeedbackRequest true "Feedback payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /feedback/classes [post]
func (h *FeedbackHandler) CreateClassFeedback(c *gin.Context) {
	var req service.ClassFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	feedback, err := h.service.CreateClassFeedback(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, feedback)
}

// ListClassFeedback godoc
// @Summary List class feedback
// @Tags Feedback
// @Produce json
// @Param class_id query string false "Filter by class"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /feedback/classes [get]
func (h *FeedbackHandler) ListClassFeedback(c *gin.Context) {
	feedback, err := h.service.ListClassFeedback(c.Request.Context(), c.Query("class_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, feedback, nil)
}

// CreateStudentFeedback godoc
// @Summary Record private feedback on a student
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body service.StudentFeedbackRequest true "Feedback payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /feedback/students [post]
func (h *FeedbackHandler) CreateStudentFeedback(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.StudentFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	feedback, err := h.service.CreateStudentFeedback(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, feedback)
}

// ListStudentFeedback godoc
// @Summary List feedback recorded for a student
// @Tags Feedback
// @Produce json
// @Param id path string true "Student user ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /feedback/students/{id} [get]
func (h *FeedbackHandler) ListStudentFeedback(c *gin.Context) {
	feedback, err := h.service.ListStudentFeedback(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, feedback, nil)
}
