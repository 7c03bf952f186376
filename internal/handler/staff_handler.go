package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/edutrack-sync/internal/models"
	"github.com/edutrack/edutrack-sync/internal/service"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
	"github.com/edutrack/edutrack-sync/pkg/response"
)

type rosterService interface {
	Teachers() []models.Teacher
	CreateTeacher(req service.UpsertTeacherRequest) (*models.Teacher, error)
	UpdateTeacher(id string, req service.UpsertTeacherRequest) (*models.Teacher, error)
	DeleteTeacher(id string) error
	Staff() []models.StaffMember
	CreateStaff(req service.UpsertStaffRequest) (*models.StaffMember, error)
	UpdateStaff(id string, req service.UpsertStaffRequest) (*models.StaffMember, error)
	DeleteStaff(id string) error
}

// StaffHandler exposes the teaching and non-teaching rosters.
type StaffHandler struct {
	roster rosterService
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(roster rosterService) *StaffHandler {
	return &StaffHandler{roster: roster}
}

// ListTeachers godoc
// @Summary List teachers
// @Tags Staff
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *StaffHandler) ListTeachers(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.roster.Teachers(), nil)
}

// CreateTeacher godoc
// @Summary Add teacher
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body service.UpsertTeacherRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Router /teachers [post]
func (h *StaffHandler) CreateTeacher(c *gin.Context) {
	var req service.UpsertTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid teacher payload"))
		return
	}
	teacher, err := h.roster.CreateTeacher(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// UpdateTeacher godoc
// @Summary Update teacher
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body service.UpsertTeacherRequest true "Teacher payload"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id} [put]
func (h *StaffHandler) UpdateTeacher(c *gin.Context) {
	var req service.UpsertTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid teacher payload"))
		return
	}
	teacher, err := h.roster.UpdateTeacher(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// DeleteTeacher godoc
// @Summary Remove teacher
// @Tags Staff
// @Param id path string true "Teacher ID"
// @Success 204
// @Router /teachers/{id} [delete]
func (h *StaffHandler) DeleteTeacher(c *gin.Context) {
	if err := h.roster.DeleteTeacher(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListStaff godoc
// @Summary List non-teaching staff
// @Tags Staff
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /staff [get]
func (h *StaffHandler) ListStaff(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.roster.Staff(), nil)
}

// CreateStaff godoc
// @Summary Add staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body service.UpsertStaffRequest true "Staff payload"
// @Success 201 {object} response.Envelope
// @Router /staff [post]
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req service.UpsertStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid staff payload"))
		return
	}
	member, err := h.roster.CreateStaff(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// UpdateStaff godoc
// @Summary Update staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param payload body service.UpsertStaffRequest true "Staff payload"
// @Success 200 {object} response.Envelope
// @Router /staff/{id} [put]
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	var req service.UpsertStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid staff payload"))
		return
	}
	member, err := h.roster.UpdateStaff(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// DeleteStaff godoc
// @Summary Remove staff member
// @Tags Staff
// @Param id path string true "Staff ID"
// @Success 204
// @Router /staff/{id} [delete]
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	if err := h.roster.DeleteStaff(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
