package api

import (
	"blog_system/internal/domain" // Importing domain models
	"blog_system/internal/utils"  // Utility functions
	"context"                     // Context for Redis operations
	"net/http"                    // HTTP status codes
	"strconv"                     // String conversion
	"strings"                     // String manipulation
	"time"                        // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Request struct for post creation
type CreatePostRequest struct {
	Text  string  `json:"text" binding:"required"` // Post body must be provided
	Image *string `json:"image"`                   // Optional image reference
	Audio *string `json:"audio"`                   // Optional audio reference
}

// PostAuthor is the author view embedded in feed rows
type PostAuthor struct {
	ID     uint   `json:"id"`   // Author ID
	Handle string `json:"user"` // Author login handle
}

// PostResponse is a feed row: the post plus its author and the per-request
// deletion permission of the caller
type PostResponse struct {
	ID        uint       `json:"id"`        // Post ID
	Text      string     `json:"text"`      // Post body
	Image     *string    `json:"image"`     // Optional image reference
	Audio     *string    `json:"audio"`     // Optional audio reference
	Likes     int        `json:"likes"`     // Aggregate like counter
	Dislikes  int        `json:"dislikes"`  // Aggregate dislike counter
	AuthorID  uint       `json:"userId"`    // Author ID (wire name "userId")
	CreatedAt time.Time  `json:"createdAt"` // Timestamp of creation
	Author    PostAuthor `json:"user"`      // Embedded author summary
	CanDelete bool       `json:"canDelete"` // Whether the caller may delete this post
}

// invalidateFeedCache drops the unfiltered feed cache entries after a write.
// Filtered variants expire via their TTL (simple version, matching the
// fixed-key invalidation used elsewhere).
func invalidateFeedCache(ctx context.Context, rdb *redis.Client) {
	_ = utils.DeleteCache(ctx, rdb, "posts:search=:order=asc")  // Default ascending feed
	_ = utils.DeleteCache(ctx, rdb, "posts:search=:order=desc") // Default descending feed
}

// currentIdentity resolves an optional bearer identity for public endpoints.
// An absent or invalid token degrades to anonymous instead of failing.
func currentIdentity(c *gin.Context, secret string) (uint, domain.Role, bool) {
	authHeader := c.GetHeader("Authorization") // Get Authorization header
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, "", false // Anonymous request
	}
	claims, err := utils.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "), secret)
	if err != nil {
		return 0, "", false // Invalid token, treat as anonymous
	}
	return claims.UserID, claims.Role, true // Resolved identity
}

// CreatePostHandler creates a post owned by the authenticated user
func CreatePostHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		var req CreatePostRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		var author domain.User // Confirm the author still exists
		if err := db.First(&author, userID).Error; err != nil {
			// If the author row vanished, return not found
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		// Build the post record with zeroed counters
		post := domain.Post{
			Text:     req.Text,  // Post body
			Image:    req.Image, // Optional image reference
			Audio:    req.Audio, // Optional audio reference
			AuthorID: author.ID, // Owning author
		}
		// Attempt to create the post in the database
		if err := db.Create(&post).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": author.ID,   // Author ID
				"error":   err.Error(), // Error message
			}).Error("Failed to create post") // Log failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create post"})
			return
		}
		// Invalidate the feed cache
		invalidateFeedCache(context.Background(), rdb)
		c.JSON(http.StatusCreated, post) // Return the created post
	}
}

// ListPostsHandler returns the public feed, filtered by a text substring and
// ordered by author handle. Rows carry a canDelete flag for the optional
// bearer identity; anonymous callers always get canDelete=false.
func ListPostsHandler(db *gorm.DB, rdb *redis.Client, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.DefaultQuery("search", "") // Substring filter on the post text
		order := c.DefaultQuery("order", "asc")
		// Only the two literal directions are accepted
		if order != "desc" {
			order = "asc"
		}
		userID, role, authenticated := currentIdentity(c, jwtSecret) // Optional caller identity
		ctx := context.Background()                                  // Context for Redis operations
		cacheKey := "posts:search=" + search + ":order=" + order     // Cache key per filter/order pair
		var resp []PostResponse                                      // Feed rows, canDelete stamped per request below
		// Try to get cached rows; canDelete is computed per request and never cached
		found, err := utils.GetCache(ctx, rdb, cacheKey, &resp)
		if err != nil || !found {
			var posts []domain.Post // Raw rows from the database
			// Fetch from the database: filter on text, order by author handle
			query := db.Model(&domain.Post{}).
				Select("posts.*").
				Joins("JOIN users ON users.id = posts.author_id").
				Order("users.user " + order).
				Preload("Author")
			if search != "" {
				query = query.Where("posts.text LIKE ?", "%"+search+"%") // Substring match
			}
			if err := query.Find(&posts).Error; err != nil {
				// If fetching fails, return internal server error
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch posts"})
				return
			}
			// Map rows to the response format
			resp = make([]PostResponse, len(posts))
			for i, p := range posts {
				resp[i] = PostResponse{
					ID:        p.ID,        // Post ID
					Text:      p.Text,      // Post body
					Image:     p.Image,     // Optional image reference
					Audio:     p.Audio,     // Optional audio reference
					Likes:     p.Likes,     // Aggregate like counter
					Dislikes:  p.Dislikes,  // Aggregate dislike counter
					AuthorID:  p.AuthorID,  // Author ID
					CreatedAt: p.CreatedAt, // Timestamp of creation
					Author: PostAuthor{
						ID:     p.Author.ID,     // Author ID
						Handle: p.Author.Handle, // Author login handle
					},
				}
			}
			// Cache the rows for future requests
			_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		}
		// Stamp the per-request deletion permission: owner or admin may delete
		for i := range resp {
			resp[i].CanDelete = authenticated && (resp[i].AuthorID == userID || role.CanModerate())
		}
		c.JSON(http.StatusOK, resp) // Return the feed
	}
}

// DeletePostHandler deletes a post if the caller owns it or is an admin
func DeletePostHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")   // Caller identity from context
		roleVal, _ := c.Get("role")     // Caller role from context
		role, _ := roleVal.(domain.Role) // Zero role when unset, which cannot moderate
		// Parse the post ID from the path
		postID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		var post domain.Post // Fetch the target post
		if err := db.First(&post, postID).Error; err != nil {
			// If the post does not exist, return not found
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		// Only the owner or an admin may delete
		if post.AuthorID != userID && !role.CanModerate() {
			c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to delete this post"})
			return
		}
		// Attempt to delete the post
		if err := db.Delete(&post).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"post_id": post.ID,     // Target post
				"user_id": userID,      // Acting user
				"error":   err.Error(), // Error message
			}).Error("Failed to delete post") // Log failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete post"})
			return
		}
		// Invalidate the feed cache
		invalidateFeedCache(context.Background(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"}) // Return success response
	}
}
