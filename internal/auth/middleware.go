package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/chatauth/internal/database/users"
	"github.com/mrlokans/chatauth/internal/entities"
)

// ContextKeySession is the gin context key holding the current Session.
const ContextKeySession = "auth_session"

// Session is what the middleware attaches to an authenticated request.
type Session struct {
	User      *entities.User
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// UserLoader resolves the user named by a token.
type UserLoader interface {
	GetUserByID(ctx context.Context, id string) (*entities.User, error)
}

// Middleware guards routes that need a logged-in user.
type Middleware struct {
	tokens *TokenIssuer
	users  UserLoader
	log    logrus.FieldLogger
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(tokens *TokenIssuer, loader UserLoader, log logrus.FieldLogger) *Middleware {
	return &Middleware{tokens: tokens, users: loader, log: log}
}

// RequireSession rejects requests without a valid session cookie and
// attaches the Session to the context otherwise.
func (m *Middleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil || raw == "" {
			abort(c, http.StatusUnauthorized, ErrNoToken)
			return
		}

		claims, err := m.tokens.Parse(raw)
		if err != nil {
			m.log.WithError(err).Debug("rejected session token")
			abort(c, http.StatusUnauthorized, ErrInvalidToken)
			return
		}

		user, err := m.users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				abort(c, http.StatusUnauthorized, ErrSessionUserNotFound)
				return
			}
			m.log.WithError(err).WithField("handler", "RequireSession").Error("failed to load session user")
			abort(c, http.StatusInternalServerError, ErrInternal)
			return
		}

		session := Session{User: user}
		if claims.IssuedAt != nil {
			session.IssuedAt = claims.IssuedAt.Time
		}
		if claims.ExpiresAt != nil {
			session.ExpiresAt = claims.ExpiresAt.Time
		}
		c.Set(ContextKeySession, session)
		c.Next()
	}
}

func abort(c *gin.Context, status int, err *Error) {
	c.AbortWithStatusJSON(status, gin.H{"message": err.Message})
}

// CurrentSession retrieves the Session set by RequireSession.
func CurrentSession(c *gin.Context) (Session, bool) {
	if v, exists := c.Get(ContextKeySession); exists {
		if session, ok := v.(Session); ok && session.User != nil {
			return session, true
		}
	}
	return Session{}, false
}

// CurrentUser retrieves the authenticated user from the context.
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	session, ok := CurrentSession(c)
	if !ok {
		return nil, false
	}
	return session.User, true
}
