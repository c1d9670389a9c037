package http

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/chatauth/internal/auth"
	"github.com/mrlokans/chatauth/internal/logging"
)

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	ProfilePic string `json:"profilePic"`
}

// AuthController serves the /api/auth endpoints.
type AuthController struct {
	accounts AccountService
	sessions SessionIssuer
	limiter  LoginLimiter
	logger   logrus.FieldLogger
}

func NewAuthController(accounts AccountService, sessions SessionIssuer, limiter LoginLimiter, logger logrus.FieldLogger) *AuthController {
	return &AuthController{
		accounts: accounts,
		sessions: sessions,
		limiter:  limiter,
		logger:   logger,
	}
}

// bindJSON decodes the body into dst. An empty body leaves dst zero-valued
// so that field validation, not the decoder, reports what is missing.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, auth.ErrInvalidRequestBody.Message)
		return false
	}
	return true
}

// Signup creates an account and logs it in.
func (ac *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ac.accounts.Signup(c.Request.Context(), auth.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, ac.logger, err, "Signup")
		return
	}

	if err := ac.sessions.IssueCookie(c, user.ID); err != nil {
		respondInternalError(c, ac.logger, err, "Signup")
		return
	}

	respondCreated(c, user)
}

// Login verifies credentials and issues a session cookie.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	ip := c.ClientIP()
	if ac.limiter != nil {
		if allowed, retryAfter := ac.limiter.Allow(ip, req.Email); !allowed {
			c.Header("Retry-After", retryAfterSeconds(retryAfter))
			respondError(c, http.StatusTooManyRequests, auth.ErrTooManyAttempts.Message)
			return
		}
	}

	user, err := ac.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) && ac.limiter != nil {
			if locked, _ := ac.limiter.RecordFailure(ip, req.Email); locked {
				logging.FromContext(c, ac.logger).WithField("client_ip", ip).Warn("login locked out after repeated failures")
			}
		}
		respondServiceError(c, ac.logger, err, "Login")
		return
	}

	if ac.limiter != nil {
		ac.limiter.RecordSuccess(ip, req.Email)
	}

	if err := ac.sessions.IssueCookie(c, user.ID); err != nil {
		respondInternalError(c, ac.logger, err, "Login")
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout clears the session cookie. It never fails.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.sessions.ClearCookie(c)
	respondSuccess(c, "Logged out successfully")
}

// CheckAuth returns the user attached by the session middleware.
func (ac *AuthController) CheckAuth(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondInternalError(c, ac.logger, errors.New("no session user in context"), "CheckAuth")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile uploads a new profile picture for the current user.
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondInternalError(c, ac.logger, errors.New("no session user in context"), "UpdateProfile")
		return
	}

	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := ac.accounts.UpdateProfilePic(c.Request.Context(), user.ID, req.ProfilePic)
	if err != nil {
		respondServiceError(c, ac.logger, err, "UpdateProfile")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Ping is the liveness probe.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(int(math.Ceil(d.Seconds())))
}
