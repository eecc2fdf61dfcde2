package middleware

import (
	"errors"   // errors.Is checks
	"net/http" // HTTP status codes
	"strconv"  // Token subject to user ID
	"strings"  // Authorization header parsing

	"amine_web/internal/repository" // User lookup
	"amine_web/internal/utils"      // Token parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context key under which the authenticated user is stored
const CurrentUserKey = "currentUser"

// JWTAuthMiddleware validates the bearer token and loads the authenticated
// user into the request context. The token subject carries the user id.
func JWTAuthMiddleware(secret string, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		subject, err := utils.ParseToken(tokenStr, secret)    // Parse and validate the token
		if err != nil {
			// Expired and invalid tokens are both rejected the same way
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}
		// The subject is the user id assigned at creation
		userID, err := strconv.ParseUint(subject, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}
		// Load the user behind the token
		user, err := users.FindByID(c.Request.Context(), uint(userID))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}
		// A valid token for a disabled account is still rejected
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Inactive user"})
			return
		}
		c.Set(CurrentUserKey, user) // Store the authenticated user in context
		c.Next()                    // Proceed to the next handler
	}
}
