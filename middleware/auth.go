package middleware

import (
	"strings"

	"courtside/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// ContextUserID is set when the request carried a valid bearer token.
	ContextUserID = "userID"
	// ContextBearer carries the raw token for forwarding to the court API.
	ContextBearer = "bearerToken"
)

// OptionalAuth extracts the caller's identity from a bearer token when one is
// present. Absence of a token means an anonymous request; the court API
// decides which of those it rejects. An invalid token is treated as
// anonymous rather than a hard failure so browsing never breaks on an
// expired login.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.Next()
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			zap.L().Debug("ignoring invalid bearer token", zap.Error(err))
			c.Next()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextBearer, tokenString)
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	id, _ := c.Get(ContextUserID)
	s, _ := id.(string)
	return s
}

// Bearer returns the raw bearer token, or "" for anonymous requests.
func Bearer(c *gin.Context) string {
	t, _ := c.Get(ContextBearer)
	s, _ := t.(string)
	return s
}
