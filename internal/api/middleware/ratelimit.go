package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/lcoutinho/valor-explorer/pkg/utils"
)

// RateLimit applies a global token-bucket limit across all requests.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			utils.SendTooManyRequests(c, "Too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
