package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered chat account. The JSON shape is what the frontend
// consumes; the password hash is never serialized.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"_id"`
	FullName     string    `gorm:"size:255;not null" json:"fullName"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;size:72;not null" json:"-"`
	ProfilePic   string    `gorm:"size:2048;not null;default:''" json:"profilePic"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the opaque identifier once, at insert time.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
