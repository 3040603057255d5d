package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"restwell/internal/core"

	"github.com/gin-gonic/gin"
)

// Recommender generates and reads recommendation sets
type Recommender interface {
	Generate(ctx context.Context) *core.Recommendations
	Saved(ctx context.Context) (*core.Recommendations, error)
	History(ctx context.Context) ([]*core.RecommendationHistoryEntry, error)
	ClearHistory(ctx context.Context) error
}

// RecommendationsHandler serves fitness and relaxation recommendations
type RecommendationsHandler struct {
	recommender Recommender
	logger      *slog.Logger
}

// NewRecommendationsHandler creates a new recommendations handler
func NewRecommendationsHandler(recommender Recommender, logger *slog.Logger) *RecommendationsHandler {
	return &RecommendationsHandler{
		recommender: recommender,
		logger:      logger,
	}
}

// Generate creates a new recommendation set; it always succeeds
// POST /v1/recommendations
func (h *RecommendationsHandler) Generate(c *gin.Context) {
	recs := h.recommender.Generate(c.Request.Context())
	c.JSON(http.StatusCreated, recs)
}

// GetCurrent returns the current set
// GET /v1/recommendations
func (h *RecommendationsHandler) GetCurrent(c *gin.Context) {
	recs, err := h.recommender.Saved(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read recommendations", "component", "api.recommendations", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read recommendations")
		return
	}
	c.JSON(http.StatusOK, recs)
}

// GetHistory returns the previous set, if any
// GET /v1/recommendations/history
func (h *RecommendationsHandler) GetHistory(c *gin.Context) {
	history, err := h.recommender.History(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read recommendation history", "component", "api.recommendations", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read history")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"history": history,
	})
}

// ClearHistory drops the previous set
// DELETE /v1/recommendations/history
func (h *RecommendationsHandler) ClearHistory(c *gin.Context) {
	if err := h.recommender.ClearHistory(c.Request.Context()); err != nil {
		h.logger.Error("Failed to clear recommendation history", "component", "api.recommendations", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to clear history")
		return
	}
	c.Status(http.StatusNoContent)
}
