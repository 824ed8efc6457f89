package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/camel-tools-api/camel-api/internal/analysis/domain"
	"github.com/gin-gonic/gin"
)

// APIKeyHeader is checked against the configured key.
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware rejects requests whose X-API-Key differs from expected.
// An empty expected key lets every request through.
func APIKeyMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)

		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": domain.NewErrorBody(domain.ErrUnauthorized),
			})
			return
		}

		c.Next()
	}
}
