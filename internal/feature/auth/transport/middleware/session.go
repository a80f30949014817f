// Package middleware resolves the bearer token's session to a revalidated
// user for handlers of every feature.
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard_backend/internal/feature/auth/domain/entity"
	"jobboard_backend/internal/feature/auth/usecase"
	jwtmw "jobboard_backend/internal/platform/jwt"
	"jobboard_backend/internal/platform/http/httperr"
)

const contextUser = "currentUser"

// Authenticator resolves a session id to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (entity.User, error)
}

// RequireSession must run after jwtmw.AuthRequired. It revalidates the
// session against the stored user on every request and stores the user in
// the context.
func RequireSession(auth Authenticator, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.Request.Context(), jwtmw.SessionID(c))
		if err != nil {
			if usecase.IsAuthError(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{Error: err.Error(), Code: "SESSION_INVALID"})
				return
			}
			httperr.Respond(c, l, err, nil)
			return
		}
		// The token's subject must match the session's user.
		if sub := c.GetString(jwtmw.ContextUserID); sub != "" && sub != user.ID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{Error: usecase.ErrSessionInvalid.Error(), Code: "SESSION_INVALID"})
			return
		}
		c.Set(contextUser, user)
		c.Next()
	}
}

// RequireAdmin must run after RequireSession. The role is read from the
// revalidated user, not from the token.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, httperr.ErrorResponse{Error: "admin role required", Code: "FORBIDDEN"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireSession.
func CurrentUser(c *gin.Context) (entity.User, bool) {
	v, ok := c.Get(contextUser)
	if !ok {
		return entity.User{}, false
	}
	u, ok := v.(entity.User)
	return u, ok
}

// SetCurrentUser is used by tests of handlers that sit behind RequireSession.
func SetCurrentUser(c *gin.Context, u entity.User) {
	c.Set(contextUser, u)
}
