package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	"github.com/jagrati-dev/jagrati-api/internal/service"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
	"github.com/jagrati-dev/jagrati-api/pkg/response"
)

// VolunteerHandler exposes volunteer roster and profile endpoints.
type VolunteerHandler struct {
	service *service.VolunteerService
}

// NewVolunteerHandler constructs a volunteer handler.
func NewVolunteerHandler(svc *service.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{service: svc}
}

type linkHobbyRequest struct {
	HobbyID string `json:"hobby_id" binding:"required"`
}

type linkSkillRequest struct {
	SkillID string `json:"skill_id" binding:"required"`
}

// List godoc
// @Summary List volunteers
// @Tags Volunteers
// @Produce json
// @Param programme query string false "Filter by programme"
// @Param discipline query string false "Filter by discipline"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /volunteers [get]
func (h *VolunteerHandler) List(c *gin.Context) {
	var filter models.VolunteerFilter
	filter.Programme = c.Query("programme")
	filter.Discipline = c.Query("discipline")
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	volunteers, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, volunteers, pagination)
}

// Get godoc
// @Summary Get volunteer detail with attendance, hobbies and skills
// @Tags Volunteers
// @Produce json
// @Param id path string true "Volunteer user ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /volunteers/{id} [get]
func (h *VolunteerHandler) Get(c *gin.Context) {
	volunteer, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, volunteer, nil)
}

// UpsertProfile godoc
// @Summary Create or update a volunteer profile
// @Tags Volunteers
// @Accept json
// @Produce json
// @Param id path string true "Volunteer user ID"
// @Param payload body service.VolunteerProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /volunteers/{id}/profile [put]
func (h *VolunteerHandler) UpsertProfile(c *gin.Context) {
	var req service.VolunteerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	volunteer, err := h.service.UpsertProfile(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, volunteer, nil)
}

// AddHobby godoc
// @Summary Link a hobby to a volunteer
// @Tags Volunteers
// @Accept json
// @Produce json
// @Param id path string true "Volunteer user ID"
// @Param payload body linkHobbyRequest true "Hobby payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /volunteers/{id}/hobbies [post]
func (h *VolunteerHandler) AddHobby(c *gin.Context) {
	var req linkHobbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	link, err := h.service.AddHobby(c.Request.Context(), c.Param("id"), req.HobbyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// RemoveHobby godoc
// @Summary Unlink a hobby from a volunteer
// @Tags Volunteers
// @Produce json
// @Param id path string true "Volunteer user ID"
// @Param hobbyId path string true "Hobby ID"
// @Success 204
// @Security BearerAuth
// @Router /volunteers/{id}/hobbies/{hobbyId} [delete]
func (h *VolunteerHandler) RemoveHobby(c *gin.Context) {
	if err := h.service.RemoveHobby(c.Request.Context(), c.Param("id"), c.Param("hobbyId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddSkill godoc
// @Summary Link a skill to a volunteer
// @Tags Volunteers
// @Accept json
// @Produce json
// @Param id path string true "Volunteer user ID"
// @Param payload body linkSkillRequest true "Skill payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /volunteers/{id}/skills [post]
func (h *VolunteerHandler) AddSkill(c *gin.Context) {
	var req linkSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	link, err := h.service.AddSkill(c.Request.Context(), c.Param("id"), req.SkillID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// RemoveSkill godoc
// @Summary Unlink a skill from a volunteer
// @Tags Volunteers
// @Produce json
// @Param id path string true "Volunteer user ID"
// @Param skillId path string true "Skill ID"
// @Success 204
// @Security BearerAuth
// @Router /volunteers/{id}/skills/{skillId} [delete]
func (h *VolunteerHandler) RemoveSkill(c *gin.Context) {
	if err := h.service.RemoveSkill(c.Request.Context(), c.Param("id"), c.Param("skillId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Catalogues godoc
// @Summary List the hobby and skill catalogues
// @Tags Volunteers
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /volunteers/catalogues [get]
func (h *VolunteerHandler) Catalogues(c *gin.Context) {
	hobbies, skills, err := h.service.Catalogues(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"hobbies": hobbies, "skills": skills}, nil)
}
