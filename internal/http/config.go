package http

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/chatauth/internal/auth"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Accounts       AccountService
	Sessions       SessionIssuer
	AuthMiddleware *auth.Middleware
	LoginLimiter   LoginLimiter // nil disables login throttling
	Database       HealthChecker
	Logger         logrus.FieldLogger

	Version string

	// Request handling
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	TrustedProxies []string // Empty means ClientIP is always the peer address

	// Cookie and CSRF settings
	SecureCookies  bool
	CSRFEnabled    bool
	CSRFSecret     []byte
	AllowedOrigins []string
}
