package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"restwell/internal/core"
	"restwell/internal/fitbit"
	"restwell/internal/tokens"
	"time"

	"github.com/gin-gonic/gin"
)

// OAuthClient builds authorization URLs and exchanges codes
type OAuthClient interface {
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*core.TokenGrant, error)
}

// StateStore keeps issued OAuth state values
type StateStore interface {
	SaveOAuthState(ctx context.Context, state string) error
	ConsumeOAuthState(ctx context.Context, state string, maxAge time.Duration) error
}

// TokenLifecycle stores, removes and reports the Fitbit session
type TokenLifecycle interface {
	Connect(ctx context.Context, grant *core.TokenGrant) (*core.TokenPair, error)
	Disconnect(ctx context.Context) error
	Status(ctx context.Context) (*tokens.Status, error)
}

// AuthHandler handles the Fitbit account connection flow
type AuthHandler struct {
	oauth  OAuthClient
	states StateStore
	tokens TokenLifecycle
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(oauth OAuthClient, states StateStore, tokens TokenLifecycle, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		oauth:  oauth,
		states: states,
		tokens: tokens,
		logger: logger,
	}
}

// GetAuthURL issues a state value and returns the Fitbit authorization URL
// GET /v1/auth/fitbit/url
func (h *AuthHandler) GetAuthURL(c *gin.Context) {
	state, err := fitbit.GenerateState()
	if err != nil {
		h.logger.Error("Failed to generate OAuth state", "component", "api.auth", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate state")
		return
	}

	if err := h.states.SaveOAuthState(c.Request.Context(), state); err != nil {
		h.logger.Error("Failed to save OAuth state", "component", "api.auth", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save state")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":            h.oauth.AuthURL(state),
		"state":          state,
		"expires_in":     int(fitbit.StateMaxAge.Seconds()),
		"requested_data": fitbit.RequestedData,
	})
}

// Callback completes the authorization code flow
// GET /auth/fitbit/callback?code=...&state=...
func (h *AuthHandler) Callback(c *gin.Context) {
	if reason := c.Query("error"); reason != "" {
		h.logger.Warn("Fitbit authorization denied", "component", "api.auth", "reason", reason)
		respondError(c, http.StatusBadRequest, "AUTHORIZATION_DENIED", c.DefaultQuery("error_description", reason))
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "code and state are required")
		return
	}

	ctx := c.Request.Context()
	if err := h.states.ConsumeOAuthState(ctx, state, fitbit.StateMaxAge); err != nil {
		if errors.Is(err, core.ErrInvalidOAuthState) {
			respondError(c, http.StatusBadRequest, "INVALID_STATE", err.Error())
			return
		}
		h.logger.Error("Failed to check OAuth state", "component", "api.auth", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check state")
		return
	}

	grant, err := h.oauth.ExchangeCode(ctx, code)
	if err != nil {
		h.logger.Error("Authorization code exchange failed", "component", "api.auth", "error", err)
		respondProviderError(c, err)
		return
	}

	pair, err := h.tokens.Connect(ctx, grant)
	if err != nil {
		h.logger.Error("Failed to store tokens", "component", "api.auth", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store tokens")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"connected":  true,
		"expires_at": pair.ExpiresAtTime(),
	})
}

// GetStatus reports the stored connection
// GET /v1/auth/fitbit/status
func (h *AuthHandler) GetStatus(c *gin.Context) {
	status, err := h.tokens.Status(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read token status", "component", "api.auth", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read token status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// Disconnect removes the stored tokens
// DELETE /v1/auth/fitbit
func (h *AuthHandler) Disconnect(c *gin.Context) {
	if err := h.tokens.Disconnect(c.Request.Context()); err != nil {
		h.logger.Error("Failed to disconnect", "component", "api.auth", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to disconnect")
		return
	}
	c.Status(http.StatusNoContent)
}
