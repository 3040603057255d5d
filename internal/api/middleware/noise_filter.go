package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthenticatedKey is set by the API key check on success
const AuthenticatedKey = "authenticated"

var scannerPaths = []string{
	"/admin",
	"/phpmyadmin",
	"/wp-admin",
	"/wp-login",
	"/.env",
	"/.git",
	"/backup",
	"/.aws",
	"/console",
	"/actuator",
	"/cgi-bin",
	"/robots.txt",
	"/favicon.ico",
	"/sitemap.xml",
}

var scannerExtensions = []string{".php", ".asp", ".aspx", ".jsp", ".bak", ".sql", ".zip", ".tar", ".gz"}

// NoiseFilter marks unauthenticated scanner probes so Logging skips them.
// It must be registered after Logging.
func NoiseFilter(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.GetBool(AuthenticatedKey) {
			return
		}

		status := c.Writer.Status()
		path := c.Request.URL.Path
		if status == http.StatusMethodNotAllowed || (status >= 400 && isScannerPath(path)) {
			c.Set(SkipLoggingKey, true)
			logger.Debug("Scanner request filtered",
				"path", path,
				"method", c.Request.Method,
				"status", status,
				"client_ip", c.ClientIP())
		}
	}
}

// isScannerPath checks if a path is commonly probed by scanners
func isScannerPath(path string) bool {
	lower := strings.ToLower(path)
	for _, prefix := range scannerPaths {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	for _, ext := range scannerExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
