package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/slug"
	"github.com/google/uuid"
)

type CategoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound, "failed to load category")
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest, actor *auth.Identity) (*models.Category, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	source := req.Name
	if req.Slug != nil && *req.Slug != "" {
		source = *req.Slug
	}
	categorySlug := slug.Make(source)
	if categorySlug == "" {
		return nil, apperror.Validation(map[string][]string{"slug": {"slug must contain at least one letter or digit"}})
	}

	if _, err := s.categories.FindBySlug(ctx, categorySlug); err == nil {
		return nil, ErrCategorySlugTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	category := &models.Category{Name: req.Name, Slug: categorySlug}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategorySlugTaken
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID, actor *auth.Identity) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return notFound(err, ErrCategoryNotFound, "failed to delete category")
	}
	return nil
}
