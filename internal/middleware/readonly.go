package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReadOnly blocks mutating requests. Used for demo deployments where the
// dashboard should be browsable but nothing may change.
func ReadOnly(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enabled && c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "This deployment is read-only",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
