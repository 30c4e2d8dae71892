package middlewares

import "github.com/gin-gonic/gin"

const (
	ctxUserIDKey = "auth.userID"
	ctxEmailKey  = "auth.email"
	ctxRoleKey   = "auth.role"
)

func UserIDFromContext(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserIDKey)

	if !ok {
		return 0, false
	}

	id, ok := v.(int64)

	return id, ok
}

func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmailKey)

	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

func RoleFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxRoleKey)

	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}
