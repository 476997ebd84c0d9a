package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jagrati-dev/jagrati-api/internal/service"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
	"github.com/jagrati-dev/jagrati-api/pkg/response"
)

// SyllabusHandler exposes syllabus endpoints.
type SyllabusHandler struct {
	service *service.SyllabusService
}

// NewSyllabusHandler constructs a syllabus handler.
func NewSyllabusHandler(svc *service.SyllabusService) *SyllabusHandler {
	return &SyllabusHandler{service: svc}
}

// List godoc
// @Summary List syllabus entries
// @Tags Syllabus
// @Produce json
// @Param class_id query string false "Filter by class"
// @Param subject_id query string false "Filter by subject"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /syllabus [get]
func (h *SyllabusHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context(), c.Query("class_id"), c.Query("subject_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Get godoc
// @Summary Get a syllabus entry
// @Tags Syllabus
// @Produce json
// @Param id path string true "Syllabus ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /syllabus/{id} [get]
func (h *SyllabusHandler) Get(c *gin.Context) {
	entry, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Create godoc
// @Summary Create a syllabus entry
// @Tags Syllabus
// @Accept json
// @Produce json
// @Param payload body service.CreateSyllabusRequest true "Syllabus payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /syllabus [post]
func (h *SyllabusHandler) Create(c *gin.Context) {
	var req service.CreateSyllabusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Update syllabus content
// @Tags Syllabus
// @Accept json
// @Produce json
// @Param id path string true "Syllabus ID"
// @Param payload body service.UpdateSyllabusRequest true "Syllabus payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /syllabus/{id} [put]
func (h *SyllabusHandler) Update(c *gin.Context) {
	var req service.UpdateSyllabusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Delete godoc
// @Summary Delete a syllabus entry
// @Tags Syllabus
// @Produce json
// @Param id path string true "Syllabus ID"
// @Success 204
// @Security BearerAuth
// @Router /syllabus/{id} [delete]
func (h *SyllabusHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
