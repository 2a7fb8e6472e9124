package api

import (
	"blog_system/internal/domain" // Importing domain models
	"blog_system/internal/utils"  // Utility functions
	"context"                     // Context for Redis operations
	"net/http"                    // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"golang.org/x/crypto/bcrypt"   // Password hashing
	"gorm.io/gorm"                 // GORM ORM library
)

// ProfileResponse is the profile view of the authenticated user
type ProfileResponse struct {
	Name     string      `json:"name"`     // First name
	LastName string      `json:"lastName"` // Last name
	Email    string      `json:"email"`    // Email address
	Handle   string      `json:"user"`     // Login handle
	Role     domain.Role `json:"role"`     // Role
}

// Request struct for profile updates; both fields are optional
type UpdateProfileRequest struct {
	Handle   *string `json:"user"`     // New login handle, if provided
	Password *string `json:"password"` // New password, if provided
}

// GetProfileHandler returns the profile of the authenticated user
func GetProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If the row vanished, return not found
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		// Return the profile subset of the record
		c.JSON(http.StatusOK, ProfileResponse{
			Name:     user.Name,     // First name
			LastName: user.LastName, // Last name
			Email:    user.Email,    // Email address
			Handle:   user.Handle,   // Login handle
			Role:     user.Role,     // Role
		})
	}
}

// UpdateProfileHandler updates the handle and/or password of the authenticated user
func UpdateProfileHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		updates := map[string]any{} // Only the provided fields are updated
		if req.Handle != nil && *req.Handle != "" {
			updates["user"] = *req.Handle // New login handle
		}
		// A new password is re-hashed before storage
		if req.Password != nil && *req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				// If hashing fails, return internal server error
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
				return
			}
			updates["password"] = string(hash) // Hashed password
		}
		// Apply the updates, if any
		if len(updates) > 0 {
			if err := db.Model(&domain.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
				// If the update fails, return internal server error
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
				return
			}
		}
		var user domain.User // Re-fetch the updated record
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
			return
		}
		// Invalidate the cached user list
		_ = utils.DeleteCache(context.Background(), rdb, "users:all")
		c.JSON(http.StatusOK, user) // Return the updated record
	}
}
