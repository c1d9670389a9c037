package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mrlokans/chatauth/internal/avatar"
	"github.com/mrlokans/chatauth/internal/config"
	"github.com/mrlokans/chatauth/internal/database/users"
	"github.com/mrlokans/chatauth/internal/entities"
)

// Loose on purpose: one @, no whitespace, a dot somewhere after the @.
// RE2's \s is ASCII only, so Unicode separators and the BOM are listed too.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)

// dummyPassword is hashed once at startup so that logins for unknown
// emails still pay for a bcrypt comparison.
const dummyPassword = "not-a-real-password"

// UserStore defines the persistence the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *entities.User) error
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	GetUserByID(ctx context.Context, id string) (*entities.User, error)
	UpdateProfilePic(ctx context.Context, id, url string) (*entities.User, error)
}

// AvatarUploader stores an image payload and returns its public URL.
type AvatarUploader interface {
	Upload(ctx context.Context, userID, payload string) (string, error)
}

type SignupInput struct {
	FullName string
	Email    string
	Password string
}

// Service handles account creation, credential checks and profile updates.
type Service struct {
	store      UserStore
	uploader   AvatarUploader
	bcryptCost int
	dummyHash  string
}

// NewService creates a new authentication service.
func NewService(store UserStore, uploader AvatarUploader, cfg config.Auth) (*Service, error) {
	dummy, err := HashPassword(dummyPassword, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &Service{
		store:      store,
		uploader:   uploader,
		bcryptCost: cfg.BcryptCost,
		dummyHash:  dummy,
	}, nil
}

// Signup validates the input, hashes the password and persists the user.
// Checks run in a fixed order and the first failure wins.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entities.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.TrimSpace(in.Email)

	if fullName == "" || email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if passwordTooShort(in.Password) {
		return nil, ErrPasswordTooShort
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if passwordTooLong(in.Password) {
		return nil, ErrPasswordTooLong
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return user, nil
}

// Authenticate validates credentials and returns the user. Unknown email
// and wrong password produce the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			_ = CheckPassword(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return s.store.GetUserByID(ctx, id)
}

// UpdateProfilePic uploads the image payload and records its URL.
func (s *Service) UpdateProfilePic(ctx context.Context, userID, payload string) (*entities.User, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, ErrProfilePicRequired
	}

	url, err := s.uploader.Upload(ctx, userID, payload)
	if err != nil {
		if errors.Is(err, avatar.ErrInvalidImage) {
			return nil, ErrInvalidProfilePic
		}
		return nil, fmt.Errorf("failed to upload profile picture: %w", err)
	}

	user, err := s.store.UpdateProfilePic(ctx, userID, url)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile picture: %w", err)
	}
	return user, nil
}
