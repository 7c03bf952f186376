package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/edutrack-sync/internal/models"
	"github.com/edutrack/edutrack-sync/internal/service"
	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
	"github.com/edutrack/edutrack-sync/pkg/response"
)

type archiveService interface {
	ArchiveYear(req service.ArchiveYearRequest) (*models.Archive, error)
	List() []models.Archive
	Get(id string) (*models.Archive, error)
}

// ArchiveHandler exposes year-end archives.
type ArchiveHandler struct {
	archives archiveService
}

// NewArchiveHandler constructs ArchiveHandler.
func NewArchiveHandler(archives archiveService) *ArchiveHandler {
	return &ArchiveHandler{archives: archives}
}

// List godoc
// @Summary List archived years
// @Tags Archives
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /archives [get]
func (h *ArchiveHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.archives.List(), nil)
}

// Get godoc
// @Summary Archived year with its frozen snapshot
// @Tags Archives
// @Produce json
// @Param id path string true "Archive ID"
// @Success 200 {object} response.Envelope
// @Router /archives/{id} [get]
func (h *ArchiveHandler) Get(c *gin.Context) {
	archive, err := h.archives.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, archive, nil)
}

// Create godoc
// @Summary Close an academic year
// @Tags Archives
// @Accept json
// @Produce json
// @Param payload body service.ArchiveYearRequest true "Archive payload"
// @Success 201 {object} response.Envelope
// @Router /archives [post]
func (h *ArchiveHandler) Create(c *gin.Context) {
	var req service.ArchiveYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid archive payload"))
		return
	}
	archive, err := h.archives.ArchiveYear(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, archive)
}
