package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hawrami/events-iraq-backend/internal/auth"
)

// RBACMiddleware checks if the user has one of the allowed roles.
// Runs after AuthMiddleware.
func RBACMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get("user")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		user, ok := userVal.(auth.User)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		for _, role := range allowedRoles {
			if user.Role.RoleName == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "Insufficient role"})
	}
}

// RequireVerifiedHost blocks hosts whose profile has not been approved.
// Admins pass through.
func RequireVerifiedHost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get("user")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		user, ok := userVal.(auth.User)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		if user.Role.RoleName == auth.RoleAdmin {
			c.Next()
			return
		}

		if user.Role.RoleName == auth.RoleHost && !user.IsVerifiedHost() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "host_not_verified",
				"message": "Your host account must be approved before using this endpoint",
			})
			return
		}

		c.Next()
	}
}
