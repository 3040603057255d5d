package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"restwell/internal/core"

	"github.com/gin-gonic/gin"
)

// ProfileStore reads and writes the user profile
type ProfileStore interface {
	GetProfile(ctx context.Context) (*core.UserProfile, error)
	SaveProfile(ctx context.Context, profile *core.UserProfile) error
}

// ProfileHandler handles the onboarding profile
type ProfileHandler struct {
	storage ProfileStore
	logger  *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(storage ProfileStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		storage: storage,
		logger:  logger,
	}
}

// GetProfile returns the stored profile
// GET /v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.storage.GetProfile(c.Request.Context())
	if errors.Is(err, core.ErrProfileNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	if err != nil {
		h.logger.Error("Failed to read profile", "component", "api.profile", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// PutProfile replaces the stored profile
// PUT /v1/profile
func (h *ProfileHandler) PutProfile(c *gin.Context) {
	var profile core.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"code":    "INVALID_REQUEST",
			"details": err.Error(),
		})
		return
	}

	if err := h.storage.SaveProfile(c.Request.Context(), &profile); err != nil {
		if errors.Is(err, core.ErrInvalidDate) {
			respondError(c, http.StatusBadRequest, "INVALID_DATE", err.Error())
			return
		}
		h.logger.Error("Failed to save profile", "component", "api.profile", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save profile")
		return
	}

	c.JSON(http.StatusOK, &profile)
}
