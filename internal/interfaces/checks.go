package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mrlokans/chatauth/internal/auth"
	"github.com/mrlokans/chatauth/internal/avatar"
	"github.com/mrlokans/chatauth/internal/database"
	"github.com/mrlokans/chatauth/internal/database/users"
	"github.com/mrlokans/chatauth/internal/http"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// UserStore implementations
var _ auth.UserStore = (*users.Repository)(nil)

// HealthChecker implementations
var _ http.HealthChecker = (*database.Database)(nil)

// =============================================================================
// External Services
// =============================================================================

// AvatarUploader implementations
var _ auth.AvatarUploader = (*avatar.S3Uploader)(nil)

// PutObjectAPI implementations
var _ avatar.PutObjectAPI = (*s3.Client)(nil)

// =============================================================================
// Account Flow
// =============================================================================

// AccountService implementations
var _ http.AccountService = (*auth.Service)(nil)

// UserLoader implementations
var _ auth.UserLoader = (*auth.Service)(nil)

// SessionIssuer implementations
var _ http.SessionIssuer = (*auth.TokenIssuer)(nil)

// LoginLimiter implementations
var _ http.LoginLimiter = (*auth.RateLimiter)(nil)
