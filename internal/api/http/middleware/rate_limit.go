package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/camel-tools-api/camel-api/internal/analysis/domain"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware shares one token bucket across all callers. rps <= 0
// disables it. Rejected requests get Retry-After set to the whole seconds
// until the next token.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		r := limiter.Reserve()
		if d := r.Delay(); d > 0 {
			r.Cancel()
			c.Header("Retry-After", retryAfter(d))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": domain.NewErrorBody(domain.ErrRateLimited),
			})
			return
		}
		c.Next()
	}
}

func retryAfter(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
