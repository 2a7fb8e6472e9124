package api

import (
	"blog_system/internal/config" // Application configuration
	"blog_system/internal/domain" // Importing domain models
	"blog_system/internal/utils"  // Utility functions
	"context"                     // Context for Redis operations
	"net/http"                    // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"golang.org/x/crypto/bcrypt"   // Password hashing
	"gorm.io/gorm"                 // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`     // First name must be provided
	LastName string      `json:"lastName" binding:"required"` // Last name must be provided
	Email    string      `json:"email" binding:"required"`    // Email must be provided
	Handle   string      `json:"user" binding:"required"`     // Login handle must be provided
	Password string      `json:"password" binding:"required"` // Password must be provided
	Role     domain.Role `json:"role" binding:"required"`     // Role must be provided
}

// Request struct for login
type LoginRequest struct {
	Handle   string `json:"user" binding:"required"`     // Login handle must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a new user account
func RegisterHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If any field is missing, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}
		// Validate the role against the supported literals
		if !req.Role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Role must be \"user\" or \"admin\""})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}
		// Build the user record
		user := domain.User{
			Name:     req.Name,     // First name
			LastName: req.LastName, // Last name
			Email:    req.Email,    // Email address
			Handle:   req.Handle,   // Unique login handle
			Password: string(hash), // Hashed password
			Role:     req.Role,     // Requested role
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user":  req.Handle,  // Login handle
				"error": err.Error(), // Error message
			}).Error("Failed to create user") // Log failure
			// If creation fails (e.g., duplicate handle), return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
			return
		}
		// Invalidate the cached user list
		_ = utils.DeleteCache(context.Background(), rdb, "users:all")
		// Return the created record (password hash is never serialized)
		c.JSON(http.StatusCreated, user)
	}
}

// LoginHandler authenticates a user and returns a JWT token carrying their role
func LoginHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("user = ?", req.Handle).First(&user).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		// Banned accounts cannot log in, checked before the password
		if user.IsBanned {
			c.JSON(http.StatusForbidden, gin.H{"message": "Account is banned"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
			return
		}
		// Generate JWT token with the user's identity and role
		token, err := utils.GenerateJWT(user.ID, user.Role, cfg.JWTSecret, cfg.JWTExpiration)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
			return
		}
		// Return the token and role in the response
		c.JSON(http.StatusOK, gin.H{"token": token, "role": user.Role})
	}
}
