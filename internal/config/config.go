package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Env string

const (
	EnvDevelopment Env = "development"
	EnvProduction  Env = "production"
)

var (
	ErrMissingJWTSecret  = errors.New("JWT_SECRET is required")
	ErrInvalidBcryptCost = fmt.Errorf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	ErrInvalidTokenTTL   = errors.New("AUTH_TOKEN_TTL must be positive")
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		CORS
		Avatar
	}

	HTTP struct {
		Port              int32
		Host              string
		ReadHeaderTimeout time.Duration
		ReadTimeout       time.Duration
		WriteTimeout      time.Duration
		IdleTimeout       time.Duration
		RequestTimeout    time.Duration // Deadline applied to every handler context
		TrustedProxies    []string      // CIDRs or IPs allowed to set X-Forwarded-For
	}
	Global struct {
		Env                      Env
		LogLevel                 string
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret  string
		TokenTTL   time.Duration
		BcryptCost int

		// Login rate limiting
		MaxLoginAttempts int
		RateLimitWindow  time.Duration
		LockoutDuration  time.Duration

		CSRFEnabled bool
		CSRFSecret  string
	}
	CORS struct {
		AllowedOrigins []string
	}
	Avatar struct {
		Bucket          string
		Region          string
		Endpoint        string // Empty for AWS, set for MinIO/R2 and friends
		AccessKeyID     string
		SecretAccessKey string
		PublicBaseURL   string // Prefix for returned URLs; derived from endpoint/bucket if empty
		UsePathStyle    bool
		MaxBytes        int64
	}
)

func NewConfig() *Config {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 5001)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("http_read_header_timeout", "5s")
	v.SetDefault("http_read_timeout", "30s")
	v.SetDefault("http_write_timeout", "30s")
	v.SetDefault("http_idle_timeout", "120s")
	v.SetDefault("http_request_timeout", "15s")
	v.SetDefault("http_trusted_proxies", "")
	v.SetDefault("app_env", string(EnvProduction))
	v.SetDefault("log_level", "info")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("jwt_secret", "")
	v.SetDefault("auth_token_ttl", DefaultTokenTTL.String())
	v.SetDefault("auth_bcrypt_cost", 10)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")
	v.SetDefault("auth_csrf_enabled", false)
	v.SetDefault("auth_csrf_secret", "")

	v.SetDefault("cors_allowed_origins", DefaultAllowedOrigin)

	// Avatar storage defaults
	v.SetDefault("avatar_bucket", "avatars")
	v.SetDefault("avatar_region", "us-east-1")
	v.SetDefault("avatar_endpoint", "")
	v.SetDefault("avatar_access_key_id", "")
	v.SetDefault("avatar_secret_access_key", "")
	v.SetDefault("avatar_public_base_url", "")
	v.SetDefault("avatar_use_path_style", false)
	v.SetDefault("avatar_max_bytes", DefaultAvatarMaxBytes)

	return &Config{
		HTTP: HTTP{
			Port:              v.GetInt32("PORT"),
			Host:              v.GetString("HOST"),
			ReadHeaderTimeout: v.GetDuration("HTTP_READ_HEADER_TIMEOUT"),
			ReadTimeout:       v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:      v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:       v.GetDuration("HTTP_IDLE_TIMEOUT"),
			RequestTimeout:    v.GetDuration("HTTP_REQUEST_TIMEOUT"),
			TrustedProxies:    splitList(v.GetString("HTTP_TRUSTED_PROXIES")),
		},
		Global: Global{
			Env:                      Env(strings.ToLower(v.GetString("APP_ENV"))),
			LogLevel:                 v.GetString("LOG_LEVEL"),
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			JWTSecret:        v.GetString("JWT_SECRET"),
			TokenTTL:         v.GetDuration("AUTH_TOKEN_TTL"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
			CSRFEnabled:      v.GetBool("AUTH_CSRF_ENABLED"),
			CSRFSecret:       v.GetString("AUTH_CSRF_SECRET"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Avatar: Avatar{
			Bucket:          v.GetString("AVATAR_BUCKET"),
			Region:          v.GetString("AVATAR_REGION"),
			Endpoint:        v.GetString("AVATAR_ENDPOINT"),
			AccessKeyID:     v.GetString("AVATAR_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AVATAR_SECRET_ACCESS_KEY"),
			PublicBaseURL:   v.GetString("AVATAR_PUBLIC_BASE_URL"),
			UsePathStyle:    v.GetBool("AVATAR_USE_PATH_STYLE"),
			MaxBytes:        v.GetInt64("AVATAR_MAX_BYTES"),
		},
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return ErrInvalidBcryptCost
	}
	if c.Auth.TokenTTL <= 0 {
		return ErrInvalidTokenTTL
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Global.Env == EnvDevelopment
}

// SecureCookies is true everywhere except local development, where the
// frontend is usually served over plain HTTP.
func (c *Config) SecureCookies() bool {
	return !c.IsDevelopment()
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
