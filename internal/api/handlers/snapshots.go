package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"restwell/internal/core"
	"time"

	"github.com/gin-gonic/gin"
)

// SnapshotReader reads stored daily snapshots
type SnapshotReader interface {
	GetSnapshot(ctx context.Context, date string) (*core.DailySnapshot, error)
	GetLatestSnapshot(ctx context.Context) (*core.DailySnapshot, error)
	GetLastSync(ctx context.Context) (time.Time, error)
}

// SnapshotsHandler serves synced daily data
type SnapshotsHandler struct {
	storage SnapshotReader
	logger  *slog.Logger
}

// NewSnapshotsHandler creates a new snapshots handler
func NewSnapshotsHandler(storage SnapshotReader, logger *slog.Logger) *SnapshotsHandler {
	return &SnapshotsHandler{
		storage: storage,
		logger:  logger,
	}
}

// GetLatest returns the most recent snapshot and the last sync time
// GET /v1/snapshots/latest
func (h *SnapshotsHandler) GetLatest(c *gin.Context) {
	ctx := c.Request.Context()

	snapshot, err := h.storage.GetLatestSnapshot(ctx)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	lastSync, err := h.storage.GetLastSync(ctx)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot":  snapshot,
		"last_sync": lastSync,
	})
}

// GetByDate returns the snapshot for a YYYY-MM-DD date
// GET /v1/snapshots/:date
func (h *SnapshotsHandler) GetByDate(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(core.DateLayout, date); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_DATE", core.ErrInvalidDate.Error())
		return
	}

	snapshot, err := h.storage.GetSnapshot(c.Request.Context(), date)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *SnapshotsHandler) respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, core.ErrSnapshotNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	h.logger.Error("Failed to read snapshot", "component", "api.snapshots", "error", err)
	respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read snapshot")
}
