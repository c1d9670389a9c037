package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/chatauth/internal/auth"
	"github.com/mrlokans/chatauth/internal/logging"
)

// --- Response Types ---

// MessageResponse is the body of every error and of plain acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Error Response Helpers ---

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, logger logrus.FieldLogger, err error, handler string) {
	logging.FromContext(c, logger).
		WithError(err).
		WithField("handler", handler).
		Error("internal error")
	respondError(c, http.StatusInternalServerError, auth.ErrInternal.Message)
}

// respondServiceError maps a service failure to its status code. Anything
// that is not an *auth.Error is treated as internal.
func respondServiceError(c *gin.Context, logger logrus.FieldLogger, err error, handler string) {
	var authErr *auth.Error
	if !errors.As(err, &authErr) || authErr.Kind == auth.KindInternal {
		respondInternalError(c, logger, err, handler)
		return
	}
	respondError(c, statusForKind(authErr.Kind), authErr.Message)
}

func statusForKind(kind auth.Kind) int {
	switch kind {
	case auth.KindValidation:
		return http.StatusBadRequest
	case auth.KindConflict:
		return http.StatusConflict
	case auth.KindAuth:
		// Failed logins are reported as bad requests; the session
		// middleware answers 401 on its own.
		return http.StatusBadRequest
	case auth.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
