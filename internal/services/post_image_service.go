package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
	"github.com/google/uuid"
)

type PostImageService struct {
	images repository.PostImageRepository
	posts  *PostService
	files  repository.FileRepository
}

func NewPostImageService(images repository.PostImageRepository, posts *PostService, files repository.FileRepository) *PostImageService {
	return &PostImageService{images: images, posts: posts, files: files}
}

// List returns the images of a post the actor may read, ordered by sort.
func (s *PostImageService) List(ctx context.Context, postID uuid.UUID, actor *auth.Identity) ([]models.PostImage, error) {
	if _, err := s.posts.Get(ctx, postID, actor); err != nil {
		return nil, err
	}
	images, err := s.images.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list post images: %w", err)
	}
	return images, nil
}

// Add attaches a file to a post, or updates its sort if already attached.
// The actor must be allowed to modify both the post and the file.
func (s *PostImageService) Add(ctx context.Context, postID uuid.UUID, req *dto.AddPostImageRequest, actor *auth.Identity) (*models.PostImage, error) {
	if _, err := s.posts.loadForWrite(ctx, postID, actor); err != nil {
		return nil, err
	}
	if _, err := loadAttachableFile(ctx, s.files, req.FileID, actor); err != nil {
		return nil, err
	}

	image := &models.PostImage{PostID: postID, FileID: req.FileID}
	if req.Sort != nil {
		image.Sort = *req.Sort
	}
	if err := s.images.Upsert(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to attach image: %w", err)
	}
	return image, nil
}

func (s *PostImageService) Remove(ctx context.Context, postID uuid.UUID, req *dto.RemovePostImageRequest, actor *auth.Identity) error {
	if _, err := s.posts.loadForWrite(ctx, postID, actor); err != nil {
		return err
	}
	if err := s.images.Delete(ctx, postID, req.FileID); err != nil {
		return notFound(err, ErrPostImageNotFound, "failed to detach image")
	}
	return nil
}
