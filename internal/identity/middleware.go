package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// HeaderName carries the caller's user id. The value is trusted as-is;
// authenticating it is the gateway's job, not ours.
const HeaderName = "X-Sharer-User-Id"

// Required is a Gin middleware that resolves the caller identity from
// the X-Sharer-User-Id header and stores it in the request context.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(HeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + HeaderName + " header",
			})
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + HeaderName + " header",
			})
			return
		}

		c.Set(contextKey, userID)
		c.Next()
	}
}
