package entrypoint

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/chatauth/internal/auth"
	"github.com/mrlokans/chatauth/internal/avatar"
	"github.com/mrlokans/chatauth/internal/config"
	"github.com/mrlokans/chatauth/internal/database"
	"github.com/mrlokans/chatauth/internal/database/users"
	http_controllers "github.com/mrlokans/chatauth/internal/http"
	"github.com/mrlokans/chatauth/internal/logging"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// NewHandler wraps the router with CORS. The frontend runs on a separate
// origin and sends the session cookie, so credentials must be allowed.
func NewHandler(router http.Handler, cfg config.CORS) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", auth.CSRFTokenHeader, logging.RequestIDHeader},
		ExposedHeaders:   []string{logging.RequestIDHeader, auth.CSRFTokenHeader},
		AllowCredentials: true,
		MaxAge:           600,
	}).Handler(router)
}

// NewServer builds the http.Server with the configured timeouts.
func NewServer(handler http.Handler, cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}
}

func Serve(srv *http.Server, cfg *config.Config, logger logrus.FieldLogger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	go func() {
		logger.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("listen failed")
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.WithField("timeout", timeout.String()).Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}

	// Release resources only after in-flight requests are done
	if onShutdown != nil {
		onShutdown(ctx)
	}

	logger.Info("server exiting")
}

// App holds everything Run wires together.
type App struct {
	Router      *gin.Engine
	Database    *database.Database
	RateLimiter *auth.RateLimiter
	Logger      *logrus.Logger
}

// Close releases the app's resources.
func (a *App) Close() {
	a.RateLimiter.Stop()
	if err := a.Database.Close(); err != nil {
		a.Logger.WithError(err).Error("error closing database")
	}
}

// Build validates cfg and constructs the application. uploader may be nil,
// in which case an S3 uploader is created from cfg.Avatar.
func Build(ctx context.Context, cfg *config.Config, version string, uploader auth.AvatarUploader) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(cfg.Global)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabaseWithLogger(cfg.Database.Path, logger)
	if err != nil {
		return nil, err
	}

	if uploader == nil {
		s3Uploader, err := avatar.NewS3Uploader(ctx, cfg.Avatar)
		if err != nil {
			db.Close()
			return nil, err
		}
		uploader = s3Uploader
	}

	tokens, err := auth.NewTokenIssuer([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, cfg.SecureCookies())
	if err != nil {
		db.Close()
		return nil, err
	}

	service, err := auth.NewService(users.NewRepository(db.DB), uploader, cfg.Auth)
	if err != nil {
		db.Close()
		return nil, err
	}

	var csrfKey []byte
	if cfg.Auth.CSRFEnabled {
		secret := cfg.Auth.CSRFSecret
		if secret == "" {
			// Tokens will not survive a restart
			if secret, err = auth.GenerateSecret(); err != nil {
				db.Close()
				return nil, err
			}
			logger.Warn("AUTH_CSRF_SECRET is not set, using a random secret")
		}
		csrfKey = auth.DeriveKey(secret)
	}

	rateLimiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.Auth.MaxLoginAttempts,
		WindowDuration:  cfg.Auth.RateLimitWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
	})

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Accounts:       service,
		Sessions:       tokens,
		AuthMiddleware: auth.NewMiddleware(tokens, service, logger),
		LoginLimiter:   rateLimiter,
		Database:       db,
		Logger:         logger,
		Version:        version,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		MaxBodyBytes:   maxBodyBytes(cfg.Avatar.MaxBytes),
		TrustedProxies: cfg.HTTP.TrustedProxies,
		SecureCookies:  cfg.SecureCookies(),
		CSRFEnabled:    cfg.Auth.CSRFEnabled,
		CSRFSecret:     csrfKey,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	return &App{
		Router:      router,
		Database:    db,
		RateLimiter: rateLimiter,
		Logger:      logger,
	}, nil
}

// maxBodyBytes leaves room for base64 expansion of the largest avatar.
func maxBodyBytes(avatarMax int64) int64 {
	if avatarMax <= 0 {
		return 0
	}
	return avatarMax*4/3 + 64<<10
}

func Run(cfg *config.Config, version string) {
	app, err := Build(context.Background(), cfg, version, nil)
	if err != nil {
		logrus.WithError(err).Fatal("failed to start")
	}

	app.Logger.WithFields(logrus.Fields{
		"version": version,
		"env":     cfg.Global.Env,
	}).Info("starting chatauth")

	srv := NewServer(NewHandler(app.Router, cfg.CORS), cfg)
	Serve(srv, cfg, app.Logger, func(ctx context.Context) {
		app.Close()
	})
}
