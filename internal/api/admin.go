package api

import (
	"errors"   // errors.Is checks
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing
	"time"     // Cache TTL

	"amine_web/internal/repository" // User storage
	"amine_web/internal/utils"      // Redis cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
)

// ListUsersHandler returns all users, cached briefly in Redis
func ListUsersHandler(users repository.UserRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Try the cache first
		var cached []map[string]any
		if found, err := utils.GetCache(c.Request.Context(), rdb, utils.UserListCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}

		// Cache miss, hit the database
		list, err := users.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}
		if err := utils.SetCache(c.Request.Context(), rdb, utils.UserListCacheKey, list, 30*time.Second); err != nil {
			logrus.WithError(err).Warn("failed to cache user list")
		}
		c.JSON(http.StatusOK, list)
	}
}

// DeleteUserHandler removes a user and, in the same transaction, all their
// posts and interactions
func DeleteUserHandler(users repository.UserRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64) // User ID from the URL path
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user id"})
			return
		}
		// Resolve the user first so the profile cache can be invalidated
		user, err := users.FindByID(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}
		// Cascade delete inside one transaction
		if err := users.Delete(c.Request.Context(), uint(id)); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}
		// Drop stale cache entries for the deleted user
		if err := utils.DeleteCache(c.Request.Context(), rdb, utils.ProfileCacheKey(user.Username)); err != nil {
			logrus.WithError(err).Warn("failed to invalidate profile cache")
		}
		if err := utils.DeleteCache(c.Request.Context(), rdb, utils.UserListCacheKey); err != nil {
			logrus.WithError(err).Warn("failed to invalidate user list cache")
		}
		c.JSON(http.StatusOK, gin.H{"detail": "User deleted"})
	}
}
