package middleware

import (
	"blog_system/internal/domain" // Importing domain models
	"net/http"                    // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRoleMiddleware rejects requests whose resolved identity lacks the
// required role. It is a pure context check and must run after
// JWTAuthMiddleware, which owns the per-request user lookup.
func RequireRoleMiddleware(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role") // Get role from context
		// Check if the identity was resolved and carries the required role
		if !exists || role.(domain.Role) != required {
			// If not, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. Required role: " + string(required)})
			return
		}
		c.Next() // Proceed to the next handler
	}
}
