package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/slug"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PostService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	files      repository.FileRepository
	now        func() time.Time
}

func NewPostService(posts repository.PostRepository, categories repository.CategoryRepository, files repository.FileRepository) *PostService {
	return &PostService{posts: posts, categories: categories, files: files, now: time.Now}
}

func (s *PostService) List(ctx context.Context, query *dto.ListPostsQuery, actor *auth.Identity) ([]models.Post, error) {
	filter := repository.PostFilter{
		Skip:       query.Skip,
		Take:       query.Take,
		Status:     query.Status,
		Visibility: query.Visibility,
		Search:     query.Search,
		Sort:       query.Sort,
		Viewer:     actor,
	}
	if query.AuthorID != "" {
		id, err := uuid.Parse(query.AuthorID)
		if err != nil {
			return nil, apperror.Validation(map[string][]string{"authorId": {"authorId must be a valid UUID"}})
		}
		filter.AuthorID = &id
	}
	if query.CategoryID != "" {
		id, err := uuid.Parse(query.CategoryID)
		if err != nil {
			return nil, apperror.Validation(map[string][]string{"categoryId": {"categoryId must be a valid UUID"}})
		}
		filter.CategoryID = &id
	}

	posts, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Get returns a post the actor may read. PRIVATE posts are Forbidden to
// everyone but the author and admins.
func (s *PostService) Get(ctx context.Context, id uuid.UUID, actor *auth.Identity) (*models.Post, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanView(post.Visibility, post.AuthorID, actor) {
		return nil, apperror.ErrForbidden
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, req *dto.CreatePostRequest, actor *auth.Identity) (*models.Post, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	content, err := contentObject(req.ContentJSON)
	if err != nil {
		return nil, err
	}

	source := req.Title
	if req.Slug != nil && *req.Slug != "" {
		source = *req.Slug
	}
	postSlug, err := s.availableSlug(ctx, source, uuid.Nil)
	if err != nil {
		return nil, err
	}

	categories, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       req.Title,
		Slug:        postSlug,
		Summary:     req.Summary,
		ContentJSON: content,
		ContentHTML: req.ContentHTML,
		Status:      models.PostStatusDraft,
		Visibility:  models.VisibilityPublic,
		AuthorID:    actor.ID,
		Categories:  categories,
	}
	if req.Status != "" {
		post.Status = req.Status
	}
	if req.Visibility != "" {
		post.Visibility = req.Visibility
	}
	s.stampPublished(post)

	if err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPostSlugTaken
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// Update applies the fields present in req. Absent and null fields are left
// unchanged.
func (s *PostService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePostRequest, actor *auth.Identity) (*models.Post, error) {
	post, err := s.loadForWrite(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != "" {
		postSlug, err := s.availableSlug(ctx, *req.Slug, post.ID)
		if err != nil {
			return nil, err
		}
		post.Slug = postSlug
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if len(req.ContentJSON) > 0 && !bytes.Equal(bytes.TrimSpace(req.ContentJSON), []byte("null")) {
		content, err := contentObject(req.ContentJSON)
		if err != nil {
			return nil, err
		}
		post.ContentJSON = content
	}
	assign(&post.Summary, req.Summary)
	assign(&post.ContentHTML, req.ContentHTML)
	if req.Status != "" {
		post.Status = req.Status
	}
	if req.Visibility != "" {
		post.Visibility = req.Visibility
	}
	s.stampPublished(post)

	if err := s.posts.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPostSlugTaken
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id uuid.UUID, actor *auth.Identity) error {
	if _, err := s.loadForWrite(ctx, id, actor); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return notFound(err, ErrPostNotFound, "failed to delete post")
	}
	return nil
}

// SetCover points the post's cover at a file the actor owns (or any file for admins).
func (s *PostService) SetCover(ctx context.Context, id, fileID uuid.UUID, actor *auth.Identity) (*models.Post, error) {
	post, err := s.loadForWrite(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if _, err := loadAttachableFile(ctx, s.files, fileID, actor); err != nil {
		return nil, err
	}

	post.CoverFileID = &fileID
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to set cover: %w", err)
	}
	return post, nil
}

func (s *PostService) ClearCover(ctx context.Context, id uuid.UUID, actor *auth.Identity) (*models.Post, error) {
	post, err := s.loadForWrite(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	post.CoverFileID = nil
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to clear cover: %w", err)
	}
	return post, nil
}

func (s *PostService) load(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound, "failed to load post")
	}
	return post, nil
}

// loadForWrite fetches the post and checks the actor may modify it.
func (s *PostService) loadForWrite(ctx context.Context, id uuid.UUID, actor *auth.Identity) (*models.Post, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanModifyOwned(post.AuthorID, actor) {
		return nil, apperror.ErrForbidden
	}
	return post, nil
}

// availableSlug normalizes source and checks no other post holds it. The
// unique index still decides races between concurrent writers.
func (s *PostService) availableSlug(ctx context.Context, source string, self uuid.UUID) (string, error) {
	postSlug := slug.Make(source)
	if postSlug == "" {
		return "", apperror.Validation(map[string][]string{"slug": {"slug must contain at least one letter or digit"}})
	}

	existing, err := s.posts.FindBySlug(ctx, postSlug)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return postSlug, nil
	case err != nil:
		return "", fmt.Errorf("failed to check slug: %w", err)
	case existing.ID != self:
		return "", ErrPostSlugTaken
	default:
		return postSlug, nil
	}
}

func (s *PostService) resolveCategories(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	categories, err := s.categories.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) != len(unique) {
		return nil, ErrCategoryNotFound
	}
	return categories, nil
}

// stampPublished records the first transition into PUBLISHED.
func (s *PostService) stampPublished(post *models.Post) {
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		now := s.now()
		post.PublishedAt = &now
	}
}

func contentObject(raw json.RawMessage) (datatypes.JSON, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, apperror.Validation(map[string][]string{"contentJson": {"contentJson must be a JSON object"}})
	}
	return datatypes.JSON(raw), nil
}
