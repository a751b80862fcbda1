package dto

import "github.com/google/uuid"

type ListUsersQuery struct {
	IsActive *bool `query:"isActive"`
}

// UpdateProfileRequest leaves fields that are absent or null unchanged.
type UpdateProfileRequest struct {
	Name             *string    `json:"name" validate:"omitempty,max=255"`
	AboutMe          *string    `json:"aboutMe" validate:"omitempty,max=5000"`
	Facebook         *string    `json:"facebook" validate:"omitempty,max=255"`
	Twitter          *string    `json:"twitter" validate:"omitempty,max=255"`
	Linkedin         *string    `json:"linkedin" validate:"omitempty,max=255"`
	Phone            *string    `json:"phone" validate:"omitempty,max=50"`
	Website          *string    `json:"website" validate:"omitempty,url,max=255"`
	ProfilePictureID *uuid.UUID `json:"profilePictureId"`
	CVFileID         *uuid.UUID `json:"cvFileId"`
}
