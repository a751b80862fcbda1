// Package repository is the persistence boundary. Services depend on the
// interfaces; Gorm backs them with PostgreSQL and memrepo keeps them in memory.
package repository

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserFilter struct {
	IsActive *bool
}

type PostFilter struct {
	Skip       int
	Take       int
	Status     models.PostStatus
	Visibility models.Visibility
	AuthorID   *uuid.UUID
	CategoryID *uuid.UUID
	Search     string
	Sort       models.PostSort
	// Viewer restricts results to what the viewer may read.
	Viewer *auth.Identity
}

type FileFilter struct {
	Viewer *auth.Identity
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, error)
	// Update saves the post columns; categories are left untouched.
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type FileRepository interface {
	Create(ctx context.Context, file *models.File) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.File, error)
	List(ctx context.Context, filter FileFilter) ([]models.File, error)
	// Delete removes the record and detaches it from posts (cover, images).
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostImageRepository interface {
	// Upsert inserts the association or updates its sort when it exists.
	Upsert(ctx context.Context, image *models.PostImage) error
	Delete(ctx context.Context, postID, fileID uuid.UUID) error
	ListByPost(ctx context.Context, postID uuid.UUID) ([]models.PostImage, error)
}

// Repositories bundles one implementation of every repository.
type Repositories struct {
	Users      UserRepository
	Posts      PostRepository
	Categories CategoryRepository
	Files      FileRepository
	PostImages PostImageRepository
}

const (
	DefaultTake = 20
	MaxTake     = 100
)

// Page clamps skip/take into the accepted range.
func Page(skip, take int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		take = DefaultTake
	}
	if take > MaxTake {
		take = MaxTake
	}
	return skip, take
}
