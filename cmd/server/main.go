package main

import (
	"blog_system/internal/api"        // Custom package for API handlers
	"blog_system/internal/config"     // Custom package for configuration
	"blog_system/internal/domain"     // Custom package for domain models
	"blog_system/internal/middleware" // Custom package for middleware
	"context"                         // Context for Redis operations and shutdown
	"net/http"                        // HTTP server
	"os"                              // OS signals
	"os/signal"                       // Signal handling
	"syscall"                         // Signal constants
	"time"                            // Shutdown deadline

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
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

	authGate := middleware.JWTAuthMiddleware(db, cfg.JWTSecret)          // Bearer token + ban check
	adminGate := middleware.RequireRoleMiddleware(domain.RoleAdmin)      // Admin role check, runs after the auth gate

	// User routes
	r.POST("/users", api.RegisterHandler(db, redisClient)) // Registration endpoint
	r.POST("/login", api.LoginHandler(db, cfg))            // Login endpoint
	r.GET("/users/me", authGate, api.GetProfileHandler(db))                // Own profile endpoint
	r.PUT("/users/me", authGate, api.UpdateProfileHandler(db, redisClient)) // Profile update endpoint

	// Admin routes
	r.GET("/users", authGate, api.ListUsersHandler(db, redisClient))                  // List users endpoint
	r.POST("/users/:id/:action", authGate, adminGate, api.ToggleBanHandler(db, redisClient)) // Ban/unban endpoint

	// Post routes
	r.POST("/publicacion", authGate, api.CreatePostHandler(db, redisClient))          // Create post endpoint
	r.GET("/publicacion", api.ListPostsHandler(db, redisClient, cfg.JWTSecret))       // Public feed endpoint
	r.DELETE("/publicacion/:id", authGate, api.DeletePostHandler(db, redisClient))    // Delete post endpoint
	r.POST("/publicacion/:id/like", authGate, api.LikePostHandler(db, redisClient))       // Like endpoint
	r.POST("/publicacion/:id/dislike", authGate, api.DislikePostHandler(db, redisClient)) // Dislike endpoint

	// HTTP server with an explicit lifecycle for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.AppPort, // Listen address
		Handler: r,                 // Gin router
	}

	// Start serving in the background
	go func() {
		logrus.Infof("Server running on %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for a termination signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Drain in-flight requests, then close the Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("forced shutdown: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		logrus.Errorf("failed to close Redis client: %v", err)
	}
	logrus.Info("Server stopped.")
}
