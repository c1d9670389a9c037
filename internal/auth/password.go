package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the shortest password accepted at signup, in characters.
	MinPasswordLength = 6
	// MaxPasswordBytes is the bcrypt input limit. Multibyte characters count
	// for their encoded size.
	MaxPasswordBytes = 72
)

var ErrPasswordMismatch = errors.New("password does not match hash")

// HashPassword creates a bcrypt hash of the password.
func HashPassword(password string, cost int) (string, error) {
	if passwordTooShort(password) {
		return "", ErrPasswordTooShort
	}
	if passwordTooLong(password) {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func passwordTooShort(password string) bool {
	return utf8.RuneCountInString(password) < MinPasswordLength
}

func passwordTooLong(password string) bool {
	return len(password) > MaxPasswordBytes
}

// CheckPassword compares a password with its hash.
func CheckPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

// GenerateSecret returns 32 random bytes, hex encoded.
func GenerateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// DeriveKey stretches an operator-supplied secret of any length to the
// 32 bytes gorilla/csrf expects.
func DeriveKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}
