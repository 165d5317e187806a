package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionContextKey = "cart_session"

	// SessionHeader carries the anonymous cart session across requests.
	// The server mints one on first contact and echoes it back.
	SessionHeader = "X-Cart-Session"
)

// SessionMiddleware resolves or mints the cart session ID for the request
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		} else if _, err := uuid.Parse(sessionID); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid cart session"})
			return
		}

		c.Set(sessionContextKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// GetSessionID returns the cart session ID set by SessionMiddleware
func GetSessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return "", false
	}
	sessionID, ok := v.(string)
	return sessionID, ok
}
