package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/chatauth/internal/auth"
	"github.com/mrlokans/chatauth/internal/logging"
)

// hstsMaxAge is one year in seconds.
const hstsMaxAge = 31536000

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		cfg.Logger.WithError(err).Warn("invalid trusted proxies, ignoring forwarded headers")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(logging.RequestLogger(cfg.Logger))
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware(hstsMaxAge))
	}

	router.Use(RequestTimeoutMiddleware(cfg.RequestTimeout))
	router.Use(BodyLimitMiddleware(cfg.MaxBodyBytes))

	if cfg.CSRFEnabled {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.AllowedOrigins))
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	authController := NewAuthController(cfg.Accounts, cfg.Sessions, cfg.LoginLimiter, cfg.Logger)

	api := router.Group("/api/auth")
	{
		api.POST("/signup", authController.Signup)
		api.POST("/login", authController.Login)
		api.POST("/logout", authController.Logout)
		if cfg.CSRFEnabled {
			api.GET("/csrf", auth.CSRFTokenHandler)
		}

		protected := api.Group("", cfg.AuthMiddleware.RequireSession())
		protected.GET("/check", authController.CheckAuth)
		protected.PUT("/update-profile", authController.UpdateProfile)
	}

	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Not found")
	})

	return router
}
