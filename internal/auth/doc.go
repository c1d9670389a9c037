// Package auth provides authentication for the chat API.
//
// Sessions are stateless: a successful signup or login issues an HS256 JWT
// carrying the user's id, delivered in the "jwt" cookie. Protected routes
// are wrapped in Middleware.RequireSession, which verifies the cookie and
// loads the user.
//
// # Configuration
//
//	JWT_SECRET=<random string>       # Required, signs session tokens
//	AUTH_TOKEN_TTL=360h              # Token and cookie lifetime (15 days)
//	AUTH_BCRYPT_COST=10              # bcrypt cost factor
//	AUTH_MAX_LOGIN_ATTEMPTS=5        # Failures per IP+email before lockout
//	AUTH_RATE_LIMIT_WINDOW=15m
//	AUTH_LOCKOUT_DURATION=30m
//	AUTH_CSRF_ENABLED=false          # Require X-CSRF-Token on unsafe methods
//	APP_ENV=development              # Drops the Secure cookie flag
//
// # Usage
//
// Initialize authentication in entrypoint:
//
//	tokens, err := auth.NewTokenIssuer([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, cfg.SecureCookies())
//	authService, err := auth.NewService(userRepo, uploader, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(tokens, authService, logger)
//	protected := router.Group("/api/auth", authMiddleware.RequireSession())
//
// Extract user in handlers:
//
//	user, ok := auth.CurrentUser(c)
//
// # Errors
//
// Client-facing failures are *Error values with a Kind; anything else is
// an internal failure and must not be shown to clients.
package auth
