package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Post struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Slug        string         `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Summary     *string        `gorm:"type:text" json:"summary"`
	ContentJSON datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"contentJson"`
	ContentHTML *string        `gorm:"type:text" json:"contentHtml"`
	Status      PostStatus     `gorm:"size:20;not null;default:'DRAFT';index" json:"status"`
	Visibility  Visibility     `gorm:"size:20;not null;default:'PUBLIC';index" json:"visibility"`
	AuthorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"authorId"`
	CoverFileID *uuid.UUID     `gorm:"type:uuid" json:"coverFileId"`
	PublishedAt *time.Time     `gorm:"index" json:"publishedAt"`
	Categories  []Category     `gorm:"many2many:post_categories;constraint:OnDelete:CASCADE" json:"categories"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CategoryIDs lists the ids of the attached categories in attachment order.
func (p *Post) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
