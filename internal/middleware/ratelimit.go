package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a global token bucket. If requestsPerSecond <= 0, rate limiting is disabled.
func RateLimit(requestsPerSecond, burst int) gin.HandlerFunc {
	if requestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = requestsPerSecond
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			RespondWithError(c, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		c.Next()
	}
}
