package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hawrami/events-iraq-backend/config"
	"github.com/hawrami/events-iraq-backend/internal/auth"
)

// extractToken reads the access token from the session cookie first,
// falling back to a Bearer header for API clients
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(auth.AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func resolveUser(c *gin.Context, cfg *config.Config, authSvc auth.Service) (auth.User, bool) {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return auth.User{}, false
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTAccessSecret), nil
	})
	if err != nil || !token.Valid {
		return auth.User{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return auth.User{}, false
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return auth.User{}, false
	}

	user, err := authSvc.GetUserByID(uint(userIDFloat))
	if err != nil {
		return auth.User{}, false
	}
	return user, true
}

// AuthMiddleware requires a valid access token and loads the user into
// the request context
func AuthMiddleware(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, cfg, authSvc)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "A valid access token is required"})
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// OptionalAuthMiddleware loads the user when a valid token is present
// but lets anonymous requests through. Public endpoints use it where
// the response differs for authenticated viewers.
func OptionalAuthMiddleware(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := resolveUser(c, cfg, authSvc); ok {
			c.Set("user", user)
			c.Set("user_id", user.ID)
		}
		c.Next()
	}
}
