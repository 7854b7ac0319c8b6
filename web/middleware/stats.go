package middleware

import (
	"go.uber.org/atomic"

	"github.com/gin-gonic/gin"
)

var requestCount atomic.Int64

// CountRequests increments the served-request counter for every request.
func CountRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestCount.Inc()
		c.Next()
	}
}

// RequestCount returns the number of requests served since startup.
func RequestCount() int64 {
	return requestCount.Load()
}
