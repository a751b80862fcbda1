package dto

import (
	"encoding/json"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title       string            `json:"title" validate:"required,min=1,max=255"`
	Slug        *string           `json:"slug" validate:"omitempty,max=255"`
	Summary     *string           `json:"summary"`
	ContentJSON json.RawMessage   `json:"contentJson" validate:"required"`
	ContentHTML *string           `json:"contentHtml"`
	Status      models.PostStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Visibility  models.Visibility `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	CategoryIDs []uuid.UUID       `json:"categoryIds"`
}

type UpdatePostRequest struct {
	Title       *string           `json:"title" validate:"omitempty,min=1,max=255"`
	Slug        *string           `json:"slug" validate:"omitempty,max=255"`
	Summary     *string           `json:"summary"`
	ContentJSON json.RawMessage   `json:"contentJson"`
	ContentHTML *string           `json:"contentHtml"`
	Status      models.PostStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Visibility  models.Visibility `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE"`
}

type ListPostsQuery struct {
	Skip       int               `query:"skip" validate:"min=0"`
	Take       int               `query:"take" validate:"omitempty,min=1,max=100"`
	Status     models.PostStatus `query:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Visibility models.Visibility `query:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	AuthorID   string            `query:"authorId" validate:"omitempty,uuid"`
	CategoryID string            `query:"categoryId" validate:"omitempty,uuid"`
	Search     string            `query:"search" validate:"max=255"`
	Sort       models.PostSort   `query:"sort" validate:"omitempty,oneof=CREATED_AT_DESC CREATED_AT_ASC PUBLISHED_AT_DESC PUBLISHED_AT_ASC"`
}

type SetCoverRequest struct {
	FileID uuid.UUID `json:"fileId" validate:"required"`
}

type AddPostImageRequest struct {
	FileID uuid.UUID `json:"fileId" validate:"required"`
	Sort   *int      `json:"sort"`
}

type RemovePostImageRequest struct {
	FileID uuid.UUID `json:"fileId" validate:"required"`
}
