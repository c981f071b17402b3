package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware resolves the real client IP once per request and stores it
// in the context for the audit log writers.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", clientIP(c))
		c.Next()
	}
}

// clientIP prefers proxy headers over the socket address.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		// may hold a chain of addresses, the first one is the client
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}

	for _, header := range []string{"X-Real-Ip", "CF-Connecting-IP"} {
		if v := c.GetHeader(header); v != "" && net.ParseIP(v) != nil {
			return v
		}
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}

// GetIPFromContext returns the IP resolved by AuditMiddleware, falling back
// to resolving on the spot when the middleware did not run.
func GetIPFromContext(c *gin.Context) string {
	if v, exists := c.Get("client_ip"); exists {
		if ip, ok := v.(string); ok {
			return ip
		}
	}
	return clientIP(c)
}
