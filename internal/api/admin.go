package api

import (
	"blog_system/internal/domain" // Importing domain models
	"blog_system/internal/utils"  // Utility functions
	"context"                     // Context for Redis operations
	"net/http"                    // HTTP status codes
	"strconv"                     // String conversion
	"time"                        // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// UserSummary is the per-user view returned by the user listing
type UserSummary struct {
	ID       uint        `json:"id"`       // User ID
	Name     string      `json:"name"`     // First name
	Handle   string      `json:"user"`     // Login handle
	Email    string      `json:"email"`    // Email address
	Role     domain.Role `json:"role"`     // Role
	IsBanned bool        `json:"isBanned"` // Ban flag
}

// ListUsersHandler returns all users for the moderation view
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		cacheKey := "users:all"     // Cache key for the full user list
		var cached []UserSummary    // Cached user list
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached list
			return
		}
		var users []domain.User // Slice to hold users
		if err := db.Find(&users).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
			return
		}
		// Map users to the summary format
		resp := make([]UserSummary, len(users))
		for i, u := range users {
			resp[i] = UserSummary{
				ID:       u.ID,       // User ID
				Name:     u.Name,     // First name
				Handle:   u.Handle,   // Login handle
				Email:    u.Email,    // Email address
				Role:     u.Role,     // Role
				IsBanned: u.IsBanned, // Ban flag
			}
		}
		// Cache the list for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp) // Return the user list
	}
}

// ToggleBanHandler bans or unbans a target user. The admin role gate runs
// before this handler; the action literal is validated here. Banning an
// already-banned user is a no-op success.
func ToggleBanHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		action := c.Param("action") // Requested action from the path
		// Validate the action literal
		if action != "ban" && action != "unban" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid action. Must be \"ban\" or \"unban\"."})
			return
		}
		// Parse the target user ID from the path
		targetID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		var user domain.User // Fetch the target user
		if err := db.First(&user, targetID).Error; err != nil {
			// If the target does not exist, return not found
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		// Apply the ban flag
		if err := db.Model(&user).Update("is_banned", action == "ban").Error; err != nil {
			// If the update fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
			return
		}
		// Log the moderation action
		logrus.WithFields(logrus.Fields{
			"admin_id":  c.GetUint("userID"),             // Acting admin
			"target_id": user.ID,                         // Target user
			"action":    action,                          // ban or unban
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Ban toggle") // Log ban toggle
		// Invalidate the cached user list
		_ = utils.DeleteCache(context.Background(), rdb, "users:all")
		// Build the confirmation message
		msg := "User banned successfully"
		if action == "unban" {
			msg = "User unbanned successfully"
		}
		// Return the updated record
		c.JSON(http.StatusOK, gin.H{"message": msg, "user": user})
	}
}
