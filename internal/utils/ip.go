package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP extracts the client IP from proxy headers. Cloudflare's
// CF-Connecting-IP wins, then the first X-Forwarded-For entry, then
// X-Real-IP, then the socket address. The headers are client controlled,
// so use it for reporting only; rate limiting keys on c.ClientIP().
func GetRealIP(c *gin.Context) string {
	if ip := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); ip != "" {
		return ip
	}

	// Format: client, proxy1, proxy2, ...
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}

	return c.ClientIP()
}
