// Package middleware provides gin middleware shared across the web server.
package middleware

import (
	"github.com/google/uuid"

	"github.com/gin-gonic/gin"
)

const RequestIdHeader = "X-Request-ID"

// RequestId assigns a request id to every request, honoring one supplied by
// a trusted proxy, and echoes it in the response.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIdHeader, id)
		c.Next()
	}
}
