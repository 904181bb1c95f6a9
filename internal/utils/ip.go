package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP extracts the client IP, preferring the headers set by the reverse
// proxy in front of the API and falling back to gin's ClientIP
func GetRealIP(c *gin.Context) string {
	if ip := normalizeIP(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}

	// X-Forwarded-For is "client, proxy1, proxy2"; the leftmost entry is the client
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := normalizeIP(first); ip != "" {
			return ip
		}
	}

	return c.ClientIP()
}

// normalizeIP trims and drops a trailing port; garbage yields ""
func normalizeIP(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}
	if net.ParseIP(raw) == nil {
		return ""
	}
	return raw
}
