package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/edutrack-sync/internal/models"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
	"github.com/edutrack/edutrack-sync/pkg/response"
)

type settingsService interface {
	Settings() models.Settings
	UpdateSettings(settings models.Settings) (models.Settings, error)
}

// SettingsHandler exposes the settings singleton and related timetable slots.
type SettingsHandler struct {
	settings settingsService
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(settings settingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get godoc
// @Summary School settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.settings.Settings(), nil)
}

// Update godoc
// @Summary Replace school settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body models.Settings true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid settings payload"))
		return
	}
	updated, err := h.settings.UpdateSettings(settings)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}
