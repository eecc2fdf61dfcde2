package middleware

import (
	"net/http" // HTTP status codes

	"amine_web/internal/domain" // Domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// SuperuserOnlyMiddleware restricts a route group to superusers.
// It runs after JWTAuthMiddleware, which loads the authenticated user.
func SuperuserOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(CurrentUserKey) // Get the authenticated user from context
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}
		user, ok := value.(*domain.User)
		// Only superusers pass
		if !ok || !user.IsSuperuser {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Superuser access required"})
			return
		}
		c.Next()
	}
}
