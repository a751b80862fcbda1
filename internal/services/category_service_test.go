package services

import (
	"net/http"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/google/uuid"
)

func (s *serviceSuite) TestCreateCategoryAsAdmin() {
	category, err := s.categories.Create(s.ctx, &dto.CreateCategoryRequest{Name: "Category 1"}, s.admin)
	s.Require().NoError(err)
	s.Equal("category-1", category.Slug)
	s.Equal("Category 1", category.Name)

	got, err := s.categories.Get(s.ctx, category.ID)
	s.Require().NoError(err)
	s.Equal(category.ID, got.ID)
}

func (s *serviceSuite) TestCreateCategoryRequiresAdmin() {
	_, err := s.categories.Create(s.ctx, &dto.CreateCategoryRequest{Name: "Category 1"}, s.alice)
	s.assertKind(err, http.StatusForbidden)

	_, err = s.categories.Create(s.ctx, &dto.CreateCategoryRequest{Name: "Category 1"}, nil)
	s.ErrorIs(err, apperror.ErrUnauthorized)
}

func (s *serviceSuite) TestCategorySlugConflict() {
	_, err := s.categories.Create(s.ctx, &dto.CreateCategoryRequest{Name: "News"}, s.admin)
	s.Require().NoError(err)

	explicit := " news "
	_, err = s.categories.Create(s.ctx, &dto.CreateCategoryRequest{Name: "Latest", Slug: &explicit}, s.admin)
	s.ErrorIs(err, ErrCategorySlugTaken)

	_, err = s.categories.Create(s.ctx, &dto.CreateCategoryRequest{Name: "???"}, s.admin)
	s.ErrorIs(err, apperror.ErrValidationFailed)
}

func (s *serviceSuite) TestDeleteCategory() {
	category, err := s.categories.Create(s.ctx, &dto.CreateCategoryRequest{Name: "Temp"}, s.admin)
	s.Require().NoError(err)

	s.ErrorIs(s.categories.Delete(s.ctx, category.ID, s.alice), ErrAdminRequired)
	s.NoError(s.categories.Delete(s.ctx, category.ID, s.admin))
	s.ErrorIs(s.categories.Delete(s.ctx, category.ID, s.admin), ErrCategoryNotFound)
	s.ErrorIs(s.categories.Delete(s.ctx, uuid.New(), s.admin), ErrCategoryNotFound)

	list, err := s.categories.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(list)
}
