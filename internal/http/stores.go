package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/chatauth/internal/auth"
	"github.com/mrlokans/chatauth/internal/entities"
)

// This file consolidates the interfaces HTTP controllers depend on.
// Concrete implementations live in internal/auth and internal/database;
// compile-time checks are in internal/interfaces.

// AccountService creates accounts, checks credentials and updates profiles.
type AccountService interface {
	Signup(ctx context.Context, in auth.SignupInput) (*entities.User, error)
	Authenticate(ctx context.Context, email, password string) (*entities.User, error)
	UpdateProfilePic(ctx context.Context, userID, payload string) (*entities.User, error)
}

// SessionIssuer writes and clears the session cookie.
type SessionIssuer interface {
	IssueCookie(c *gin.Context, userID string) error
	ClearCookie(c *gin.Context)
}

// LoginLimiter throttles repeated failed logins.
type LoginLimiter interface {
	Allow(ip, email string) (bool, time.Duration)
	RecordFailure(ip, email string) (bool, time.Duration)
	RecordSuccess(ip, email string)
}

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
