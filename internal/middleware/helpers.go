// internal/middleware/helpers.go
package middleware

import "github.com/gin-gonic/gin"

const (
	requestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// GetRequestID gets the request ID from context
func GetRequestID(c *gin.Context) (string, bool) {
	id, exists := c.Get(requestIDKey)
	if !exists {
		return "", false
	}

	idStr, ok := id.(string)
	return idStr, ok
}

// MustGetRequestID gets the request ID from context or panics
func MustGetRequestID(c *gin.Context) string {
	id, exists := GetRequestID(c)
	if !exists {
		panic("request_id not found in context")
	}
	return id
}
