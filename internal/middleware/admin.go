package middleware

import (
	"finance_tracker/internal/domain" // Importing domain models
	"net/http"                        // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRole lets the request through only when the authenticated user holds one of roles.
// It must run after JWTAuthMiddleware.
func RequireRole(roles ...domain.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "code": "authentication"})
			return
		}
		for _, r := range roles {
			if user.Role.Name == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role", "code": "forbidden"})
	}
}
