package api

import (
	"errors"   // errors.Is checks
	"net/http" // HTTP status codes
	"regexp"   // Input validation
	"strings"  // String checks

	"amine_web/internal/domain"     // Domain models
	"amine_web/internal/middleware" // Current-user context key
	"amine_web/internal/repository" // User lookup
	"amine_web/internal/service"    // Registration logic
	"amine_web/internal/utils"      // Redis cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
)

// Request struct for registration. There is deliberately no superuser field:
// the flag cannot be set through this endpoint, whatever the body carries.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// emailPattern is a permissive shape check, the unique index is the arbiter
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// isValidEmail checks the email shape
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// isValidUsername checks that the username is 1-30 characters without spaces or '@'
func isValidUsername(username string) bool {
	return len(username) >= 1 && len(username) <= 30 &&
		!strings.ContainsAny(username, "@ \t\n")
}

// isValidPassword checks that the password is at least 8 characters
func isValidPassword(password string) bool {
	return len(password) >= 8
}

// CreateUserHandler registers a new user.
// The email conflict is checked and reported before the username conflict.
func CreateUserHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request"})
			return
		}
		// Validate each input shape explicitly
		if !isValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid email address"})
			return
		}
		if !isValidUsername(req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Username must be 1-30 characters without spaces or @"})
			return
		}
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Password must be at least 8 characters"})
			return
		}
		// Create the user; conflicts come back as typed errors
		user, err := auth.Register(c.Request.Context(), req.Email, req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmailTaken):
				c.JSON(http.StatusBadRequest, gin.H{"detail": "该邮箱已被注册"})
			case errors.Is(err, service.ErrUsernameTaken):
				c.JSON(http.StatusBadRequest, gin.H{"detail": "该用户名已被占用"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			}
			return
		}
		// The hash is excluded from serialization by the model's json tags
		c.JSON(http.StatusOK, user)
	}
}

// ReadMeHandler returns the authenticated user loaded by the JWT middleware
func ReadMeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(middleware.CurrentUserKey) // Get the authenticated user
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}
		c.JSON(http.StatusOK, value.(*domain.User))
	}
}

// ReadUserByUsernameHandler returns a user's public profile, no login needed.
// Lookups go through the Redis cache with a short TTL.
func ReadUserByUsernameHandler(users repository.UserRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username") // Username from the URL path
		cacheKey := utils.ProfileCacheKey(username)

		// Try the cache first
		var cached domain.User
		if found, err := utils.GetCache(c.Request.Context(), rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}

		// Cache miss, hit the database
		user, err := users.FindByUsername(c.Request.Context(), username)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "该用户名不存在"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}

		// Cache the profile; a failed write only costs the next lookup
		if err := utils.SetCache(c.Request.Context(), rdb, cacheKey, user, utils.ProfileCacheTTL); err != nil {
			logrus.WithError(err).Warn("failed to cache user profile")
		}
		c.JSON(http.StatusOK, user)
	}
}
