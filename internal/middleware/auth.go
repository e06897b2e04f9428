package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medvault/booking-api/internal/auth"
)

// Context keys set by Authenticate and read by handlers and Restrict.
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
)

// Authenticate verifies the bearer token and stores the principal id and
// role in the request context. It runs before any handler logic on
// protected routes.
func Authenticate(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header required",
			})
			return
		}

		claims, err := issuer.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(CtxUserID, claims.ID)
		c.Set(CtxUserRole, claims.Role)
		c.Next()
	}
}

// Restrict allows only the listed roles past. Must run after Authenticate.
func Restrict(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxUserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "You are not authorized to perform this action",
		})
	}
}
