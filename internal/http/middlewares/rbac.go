package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teetime/campusride/internal/domain/user"
)

// RequireDriver gates endpoints that register cars or accept rides: the
// caller's role must be driver-capable (DRIVER or BOTH).
func (m *AuthMiddleware) RequireDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing identity context",
				},
			})
			return
		}

		if !(user.User{Role: role}).CanDrive() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "Driver role required",
				},
			})
			return
		}
		c.Next()
	}
}
