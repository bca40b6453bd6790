package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the acting user's ID in the Gin context.
const userIDKey = contextKey("userID")

// userIDHeader names the header upstream auth sets on every request.
// Authentication itself lives outside this core.
const userIDHeader = "X-User-ID"

// UserContextMiddleware copies the acting user ID from the request header
// into the Gin context.
func UserContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader(userIDHeader); userID != "" {
			c.Set(string(userIDKey), userID)
		}
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
