package api

import (
	"blog_system/internal/domain"    // Importing domain models
	"blog_system/internal/reactions" // Reaction toggle engine
	"context"                        // Context for Redis operations
	"errors"                         // Sentinel error matching
	"net/http"                       // HTTP status codes
	"strconv"                        // String conversion

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// LikePostHandler records a like for the authenticated user
func LikePostHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return reactionHandler(db, rdb, domain.ReactionLike, "Like added successfully", "You have already liked this post")
}

// DislikePostHandler records a dislike for the authenticated user
func DislikePostHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return reactionHandler(db, rdb, domain.ReactionDislike, "Dislike added successfully", "You have already disliked this post")
}

// reactionHandler wraps the toggle engine for one reaction type and maps its
// errors to HTTP statuses
func reactionHandler(db *gorm.DB, rdb *redis.Client, kind domain.ReactionType, successMsg, duplicateMsg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		// Parse the post ID from the path
		postID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		// Run the toggle engine
		err = reactions.Apply(db, userID.(uint), uint(postID), kind)
		switch {
		case errors.Is(err, reactions.ErrDuplicateReaction):
			// Same-type repeat, rejected without state change
			c.JSON(http.StatusBadRequest, gin.H{"message": duplicateMsg})
			return
		case errors.Is(err, reactions.ErrPostNotFound):
			// Unknown post
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		case err != nil:
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,       // Reacting user
				"post_id": postID,       // Target post
				"type":    string(kind), // Reaction type
				"error":   err.Error(),  // Error message
			}).Error("Reaction failed") // Log reaction failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to apply reaction"})
			return
		}
		// Invalidate the feed cache so counters refresh
		invalidateFeedCache(context.Background(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": successMsg}) // Return success response
	}
}
