// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── users/           # User Store: lookup by email/id, create, profile updates
//
// # Usage
//
//	db, err := database.NewDatabase("./chatauth.db")
//	userRepo := users.NewRepository(db.DB)
//	user, err := userRepo.GetUserByEmail(ctx, "ada@example.com")
//
// Repositories take a context on every call so that request deadlines reach
// the driver.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the model to AutoMigrate in database.go
//  5. Add compile-time interface check to internal/interfaces
package database
