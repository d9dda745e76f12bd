package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SchedulerAuth guards internal scheduler endpoints with a shared secret.
// The caller must present the secret as a bearer token.
func SchedulerAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		presented := strings.TrimSpace(authHeader[7:])
		if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}
