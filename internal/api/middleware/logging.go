package middleware

import (
	"log/slog"
	"net/http"
	"restwell/internal/metrics"
	"time"

	"github.com/gin-gonic/gin"
)

// SkipLoggingKey marks a request that should not be logged
const SkipLoggingKey = "skip_logging"

// Logging logs HTTP requests with structured fields and counts them per route
func Logging(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// Process request
		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, route, statusCode)

		if c.GetBool(SkipLoggingKey) {
			return
		}

		// Query strings are left out; the OAuth callback carries the authorization code
		level := slog.LevelInfo
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "HTTP request",
			"component", "api",
			"request_id", c.GetString(RequestIDKey),
			"method", c.Request.Method,
			"path", path,
			"status", statusCode,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
			"error", c.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}
