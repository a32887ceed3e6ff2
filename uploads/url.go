package uploads

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// BaseURL is the configured public base URL or, when empty, the request's own origin.
func BaseURL(c *gin.Context, configured string) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

// AbsoluteURL turns a stored relative path into a URL clients can fetch.
// Values that are already absolute, and empty values, are returned unchanged.
func AbsoluteURL(base, path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + path
}
