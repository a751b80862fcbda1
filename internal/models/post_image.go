package models

import (
	"time"

	"github.com/google/uuid"
)

// PostImage attaches a file to a post. The composite key makes (post, file) unique.
type PostImage struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"postId"`
	FileID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"fileId"`
	Sort      int       `gorm:"not null;default:0" json:"sort"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
