// Package interfaces documents the core abstractions used throughout the application.
//
// The package holds no runtime code. checks.go pins every concrete type to
// the interfaces it is consumed through, so a signature drift fails the build.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - UserStore: create users, look them up by email or id, set the
//     profile picture (internal/auth/service.go)
//   - UserLoader: resolve the user behind a session token
//     (internal/auth/middleware.go)
//   - HealthChecker: database liveness for /health (internal/http/stores.go)
//
// ## External Service Interfaces
//
//   - AvatarUploader: store a decoded image and return its public URL
//     (internal/auth/service.go)
//   - PutObjectAPI: the single S3 call the uploader needs
//     (internal/avatar/uploader.go)
//
// ## HTTP Layer Interfaces
//
//   - AccountService: signup, credential check, profile update
//   - SessionIssuer: set and clear the jwt cookie
//   - LoginLimiter: failed-login lockout per ip and email
//
// All three live in internal/http/stores.go. Controllers depend on these
// rather than on the auth package types so they can be tested with fakes.
//
// # Adding a New Implementation
//
//  1. Implement the interface in its own package
//  2. Add a compile-time check to checks.go
//  3. Wire it in internal/entrypoint
package interfaces
