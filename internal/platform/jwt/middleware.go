// Package jwtmw issues access tokens and provides the Gin middleware that
// verifies them.
package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID    = "userID"
	ContextSessionID = "sessionID"
	ContextRole      = "role"
)

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	ParseToken(tokenStr string) (*Claims, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token", "code": "UNAUTHORIZED"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims, err := parser.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "code": "UNAUTHORIZED"})
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextSessionID, claims.SessionID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// SessionID returns the session id stored by AuthRequired.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
