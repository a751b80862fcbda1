package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is the record of an uploaded blob. StorageKey names the bytes in the
// configured storage backend and is never derived from OriginalName.
type File struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"ownerId"`
	Kind         FileKind   `gorm:"size:20;not null;default:'OTHER'" json:"kind"`
	Visibility   Visibility `gorm:"size:20;not null;default:'PRIVATE';index" json:"visibility"`
	OriginalName string     `gorm:"type:text;not null" json:"originalName"`
	MimeType     string     `gorm:"type:text;not null" json:"mimeType"`
	Size         int64      `gorm:"not null" json:"size"`
	StorageKey   string     `gorm:"size:255;not null;uniqueIndex" json:"storageKey"`
	CreatedAt    time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
