package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"restwell/internal/api/middleware"
	"restwell/internal/core"

	"github.com/gin-gonic/gin"
)

// SyncRunner performs one sync and persists the result
type SyncRunner interface {
	Run(ctx context.Context) (*core.SyncResult, error)
}

// SyncHandler triggers on-demand syncs
type SyncHandler struct {
	runner SyncRunner
	logger *slog.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(runner SyncRunner, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{
		runner: runner,
		logger: logger,
	}
}

// Sync fetches today's and yesterday's data from Fitbit
// POST /v1/sync
func (h *SyncHandler) Sync(c *gin.Context) {
	result, err := h.runner.Run(c.Request.Context())
	if err != nil {
		h.logger.Warn("Sync request failed",
			"component", "api.sync",
			"request_id", c.GetString(middleware.RequestIDKey),
			"error", err,
		)
		respondProviderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
