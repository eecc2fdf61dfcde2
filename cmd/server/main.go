package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"amine_web/internal/api"        // Custom package for API handlers
	"amine_web/internal/config"     // Custom package for configuration
	"amine_web/internal/db"         // Custom package for database access
	"amine_web/internal/middleware" // Custom package for middleware
	"amine_web/internal/repository" // Custom package for user storage
	"amine_web/internal/service"    // Custom package for auth logic

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	gormDB, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Wire storage and auth; the config is read-only from here on
	users := repository.NewGormUserRepository(gormDB)
	auth := service.NewAuthService(users, cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenExpireMinutes)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	v1 := r.Group("/api/v1") // Versioned API base path

	// Login route
	v1.POST("/login/access-token", api.LoginHandler(auth)) // Login endpoint

	// User routes
	v1.POST("/users/", api.CreateUserHandler(auth))                                          // Registration endpoint
	v1.GET("/users/username/:username", api.ReadUserByUsernameHandler(users, redisClient))   // Public profile endpoint
	v1.GET("/users/me", middleware.JWTAuthMiddleware(cfg.JWTSecret, users), api.ReadMeHandler()) // Current user endpoint

	// Admin routes (protected, superuser only)
	adminGroup := v1.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, users), middleware.SuperuserOnlyMiddleware())
	adminGroup.GET("/users", api.ListUsersHandler(users, redisClient))          // List users endpoint
	adminGroup.DELETE("/users/:id", api.DeleteUserHandler(users, redisClient)) // Cascade delete endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
