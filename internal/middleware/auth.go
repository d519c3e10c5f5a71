package middleware

import (
	"net/http"
	"strings"

	"futstore-be/internal/user"
	"futstore-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware parses the bearer token, when present, and attaches
// the verified identity to the request context. Anonymous requests
// pass through; role enforcement is RequireRole's job.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		ctx := utils.SetUserContext(c.Request.Context(), claims.UserID, claims.Name, claims.Email, claims.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole rejects requests whose verified role is not in the list.
// 401 when no identity is attached, 403 when the role does not match.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := utils.GetUserRoleFromContext(c.Request.Context())
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}
