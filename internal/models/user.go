package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account. Password is nil for invited accounts until they set one.
type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email            string     `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password         *string    `json:"-"`
	Name             *string    `gorm:"size:255" json:"name"`
	Role             Role       `gorm:"size:20;not null;default:'USER'" json:"role"`
	IsActive         bool       `gorm:"not null" json:"isActive"`
	AboutMe          *string    `gorm:"type:text" json:"aboutMe"`
	Facebook         *string    `gorm:"size:255" json:"facebook"`
	Twitter          *string    `gorm:"size:255" json:"twitter"`
	Linkedin         *string    `gorm:"size:255" json:"linkedin"`
	Phone            *string    `gorm:"size:50" json:"phone"`
	Website          *string    `gorm:"size:255" json:"website"`
	ProfilePictureID *uuid.UUID `gorm:"type:uuid" json:"profilePictureId"`
	CVFileID         *uuid.UUID `gorm:"type:uuid" json:"cvFileId"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// PublicProfile is the subset of a user shown to anonymous readers.
type PublicProfile struct {
	ID               uuid.UUID  `json:"id"`
	Name             *string    `json:"name"`
	AboutMe          *string    `json:"aboutMe"`
	Facebook         *string    `json:"facebook"`
	Twitter          *string    `json:"twitter"`
	Linkedin         *string    `json:"linkedin"`
	Phone            *string    `json:"phone"`
	Website          *string    `json:"website"`
	ProfilePictureID *uuid.UUID `json:"profilePictureId"`
	CVFileID         *uuid.UUID `json:"cvFileId"`
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:               u.ID,
		Name:             u.Name,
		AboutMe:          u.AboutMe,
		Facebook:         u.Facebook,
		Twitter:          u.Twitter,
		Linkedin:         u.Linkedin,
		Phone:            u.Phone,
		Website:          u.Website,
		ProfilePictureID: u.ProfilePictureID,
		CVFileID:         u.CVFileID,
	}
}
