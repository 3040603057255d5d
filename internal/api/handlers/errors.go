package handlers

import (
	"errors"
	"net/http"
	"restwell/internal/core"
	"restwell/internal/fitbit"
	"strings"

	"github.com/gin-gonic/gin"
)

// respondError writes the standard error body
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": message,
		"code":  code,
	})
}

// respondProviderError maps a failed sync or token exchange to an HTTP response
func respondProviderError(c *gin.Context, err error) {
	if errors.Is(err, core.ErrNoCredentials) {
		respondError(c, http.StatusUnauthorized, "RECONNECT_REQUIRED", err.Error())
		return
	}

	var apiErr *fitbit.APIError
	if !errors.As(err, &apiErr) {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	status := http.StatusBadGateway
	switch apiErr.Kind {
	case fitbit.KindRateLimit:
		status = http.StatusTooManyRequests
	case fitbit.KindTimeout:
		status = http.StatusGatewayTimeout
	case fitbit.KindReconnectRequired, fitbit.KindUnauthorized, fitbit.KindExpiredToken, fitbit.KindInvalidToken:
		status = http.StatusUnauthorized
	}
	respondError(c, status, strings.ToUpper(string(apiErr.Kind)), apiErr.Message)
}
