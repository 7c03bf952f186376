package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/edutrack-sync/internal/models"
	"github.com/edutrack/edutrack-sync/internal/service"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
	"github.com/edutrack/edutrack-sync/pkg/response"
)

type timetableService interface {
	Timetables(grade string) []models.TimetableEntry
	CreateTimetableEntry(req service.UpsertTimetableRequest) (*models.TimetableEntry, error)
	DeleteTimetableEntry(id string) error
}

// TimetableHandler exposes lesson slots.
type TimetableHandler struct {
	timetables timetableService
}

// NewTimetableHandler constructs TimetableHandler.
func NewTimetableHandler(timetables timetableService) *TimetableHandler {
	return &TimetableHandler{timetables: timetables}
}

// List godoc
// @Summary List lesson slots
// @Tags Timetables
// @Produce json
// @Param grade query string false "Filter by grade"
// @Success 200 {object} response.Envelope
// @Router /timetables [get]
func (h *TimetableHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.timetables.Timetables(c.Query("grade")), nil)
}

// Create godoc
// @Summary Add lesson slot
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body service.UpsertTimetableRequest true "Timetable payload"
// @Success 201 {object} response.Envelope
// @Router /timetables [post]
func (h *TimetableHandler) Create(c *gin.Context) {
	var req service.UpsertTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid timetable payload"))
		return
	}
	entry, err := h.timetables.CreateTimetableEntry(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Delete godoc
// @Summary Remove lesson slot
// @Tags Timetables
// @Param id path string true "Timetable entry ID"
// @Success 204
// @Router /timetables/{id} [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.timetables.DeleteTimetableEntry(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
