package config

import "time"

const (
	// DefaultDatabasePath is the default path for the user database
	DefaultDatabasePath = "./chatauth.db"

	// DefaultTokenTTL is the lifetime of a session token and its cookie (15 days)
	DefaultTokenTTL = 15 * 24 * time.Hour

	// DefaultAllowedOrigin is the local frontend dev server
	DefaultAllowedOrigin = "http://localhost:5173"

	// DefaultAvatarMaxBytes caps decoded profile pictures at 5 MiB
	DefaultAvatarMaxBytes int64 = 5 << 20
)
