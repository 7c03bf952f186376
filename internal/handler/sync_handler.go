package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/edutrack/edutrack-sync/pkg/errors"
	"github.com/edutrack/edutrack-sync/pkg/response"
)

type syncEngine interface {
	Push(ctx context.Context) (string, error)
	Pull(ctx context.Context) (bool, error)
	Syncing() bool
}

type snapshotOpener interface {
	Open(token string) ([]byte, error)
}

// SyncHandler exposes the cloud synchronization channel: manual push and
// pull, the syncing indicator and the signed snapshot download endpoint
// peers fetch announced snapshots from.
type SyncHandler struct {
	engine    syncEngine
	snapshots snapshotOpener
}

// NewSyncHandler constructs SyncHandler. Both arguments may be nil when sync
// is disabled; the endpoints then answer with a service-unavailable error.
func NewSyncHandler(engine syncEngine, snapshots snapshotOpener) *SyncHandler {
	return &SyncHandler{engine: engine, snapshots: snapshots}
}

// Push godoc
// @Summary Push local document to the cloud
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sync/push [post]
func (h *SyncHandler) Push(c *gin.Context) {
	if h.engine == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrSyncUnavailable, "sync is disabled on this node"))
		return
	}
	url, err := h.engine.Push(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"url": url}, nil)
}

// Pull godoc
// @Summary Merge the latest cloud snapshot into the local document
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sync/pull [post]
func (h *SyncHandler) Pull(c *gin.Context) {
	if h.engine == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrSyncUnavailable, "sync is disabled on this node"))
		return
	}
	applied, err := h.engine.Pull(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"applied": applied}, nil)
}

// Status godoc
// @Summary Sync channel status
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sync/status [get]
func (h *SyncHandler) Status(c *gin.Context) {
	if h.engine == nil {
		response.JSON(c, http.StatusOK, gin.H{"enabled": false, "syncing": false}, nil)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"enabled": true, "syncing": h.engine.Syncing()}, nil)
}

// Snapshot godoc
// @Summary Download a snapshot by signed token
// @Tags Sync
// @Produce json
// @Param token path string true "Signed snapshot token"
// @Success 200 {string} string "Snapshot JSON"
// @Router /sync/snapshots/{token} [get]
func (h *SyncHandler) Snapshot(c *gin.Context) {
	if h.snapshots == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrSyncUnavailable, "sync is disabled on this node"))
		return
	}
	data, err := h.snapshots.Open(c.Param("token"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "snapshot not found or link expired"))
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
