package identity

import "github.com/gin-gonic/gin"

const contextKey = "callerUserID"

// UserID returns the caller's user id or 0 when no identity was resolved.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
