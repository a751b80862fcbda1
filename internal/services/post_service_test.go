package services

import (
	"encoding/json"
	"net/http"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/google/uuid"
)

func (s *serviceSuite) TestCreatePostDefaults() {
	post := s.createPost("Hello, World!", "", s.alice)

	s.Equal("hello-world", post.Slug)
	s.Equal(models.PostStatusDraft, post.Status)
	s.Equal(models.VisibilityPublic, post.Visibility)
	s.Equal(s.alice.ID, post.AuthorID)
	s.Nil(post.PublishedAt)
}

func (s *serviceSuite) TestCreatePostRequiresIdentity() {
	_, err := s.posts.Create(s.ctx, &dto.CreatePostRequest{Title: "x", ContentJSON: json.RawMessage(`{}`)}, nil)
	s.ErrorIs(err, apperror.ErrUnauthorized)
}

func (s *serviceSuite) TestCreatePostRejectsNonObjectContent() {
	_, err := s.posts.Create(s.ctx, &dto.CreatePostRequest{Title: "x", ContentJSON: json.RawMessage(`[1,2]`)}, s.alice)
	s.ErrorIs(err, apperror.ErrValidationFailed)
}

func (s *serviceSuite) TestDuplicateSlugConflicts() {
	s.createPost("Same Title", models.VisibilityPublic, s.alice)

	_, err := s.posts.Create(s.ctx, &dto.CreatePostRequest{
		Title:       "same title",
		ContentJSON: json.RawMessage(`{}`),
	}, s.bob)
	s.ErrorIs(err, ErrPostSlugTaken)
	s.assertKind(err, http.StatusConflict)

	explicit := "Same---Title"
	_, err = s.posts.Create(s.ctx, &dto.CreatePostRequest{
		Title:       "Different",
		Slug:        &explicit,
		ContentJSON: json.RawMessage(`{}`),
	}, s.bob)
	s.ErrorIs(err, ErrPostSlugTaken)
}

func (s *serviceSuite) TestUpdateSlugConflictExcludesSelf() {
	first := s.createPost("First", models.VisibilityPublic, s.alice)
	s.createPost("Second", models.VisibilityPublic, s.alice)

	same := "First"
	updated, err := s.posts.Update(s.ctx, first.ID, &dto.UpdatePostRequest{Slug: &same}, s.alice)
	s.Require().NoError(err)
	s.Equal("first", updated.Slug)

	taken := "second"
	_, err = s.posts.Update(s.ctx, first.ID, &dto.UpdatePostRequest{Slug: &taken}, s.alice)
	s.ErrorIs(err, ErrPostSlugTaken)
}

func (s *serviceSuite) TestNonOwnerCannotModifyPost() {
	post := s.createPost("Mine", models.VisibilityPublic, s.alice)
	title := "Hijacked"

	_, err := s.posts.Update(s.ctx, post.ID, &dto.UpdatePostRequest{Title: &title}, s.bob)
	s.ErrorIs(err, apperror.ErrForbidden)

	s.ErrorIs(s.posts.Delete(s.ctx, post.ID, s.bob), apperror.ErrForbidden)

	_, err = s.posts.ClearCover(s.ctx, post.ID, s.bob)
	s.ErrorIs(err, apperror.ErrForbidden)

	_, err = s.posts.Update(s.ctx, post.ID, &dto.UpdatePostRequest{Title: &title}, nil)
	s.ErrorIs(err, apperror.ErrUnauthorized)

	reloaded, err := s.posts.Get(s.ctx, post.ID, nil)
	s.Require().NoError(err)
	s.Equal("Mine", reloaded.Title)
}

func (s *serviceSuite) TestAdminCanModifyAnyPost() {
	post := s.createPost("Theirs", models.VisibilityPrivate, s.alice)
	title := "Moderated"

	updated, err := s.posts.Update(s.ctx, post.ID, &dto.UpdatePostRequest{Title: &title}, s.admin)
	s.Require().NoError(err)
	s.Equal("Moderated", updated.Title)
	s.Equal("theirs", updated.Slug, "slug only changes when requested")

	s.NoError(s.posts.Delete(s.ctx, post.ID, s.admin))
	_, err = s.posts.Get(s.ctx, post.ID, s.admin)
	s.ErrorIs(err, ErrPostNotFound)
}

func (s *serviceSuite) TestPrivatePostAccess() {
	post := s.createPost("Secret", models.VisibilityPrivate, s.alice)

	_, err := s.posts.Get(s.ctx, post.ID, nil)
	s.ErrorIs(err, apperror.ErrForbidden)
	_, err = s.posts.Get(s.ctx, post.ID, s.bob)
	s.ErrorIs(err, apperror.ErrForbidden)

	_, err = s.posts.Get(s.ctx, post.ID, s.alice)
	s.NoError(err)
	_, err = s.posts.Get(s.ctx, post.ID, s.admin)
	s.NoError(err)

	_, err = s.posts.Get(s.ctx, uuid.New(), s.admin)
	s.ErrorIs(err, ErrPostNotFound)
}

func (s *serviceSuite) TestListPostsVisibilityFilter() {
	s.createPost("Public A", models.VisibilityPublic, s.alice)
	s.createPost("Private A", models.VisibilityPrivate, s.alice)
	s.createPost("Private B", models.VisibilityPrivate, s.bob)

	count := func(actorPosts []models.Post, err error) int {
		s.Require().NoError(err)
		return len(actorPosts)
	}

	anon, err := s.posts.List(s.ctx, &dto.ListPostsQuery{}, nil)
	s.Require().NoError(err)
	s.Len(anon, 1)
	for _, p := range anon {
		s.Equal(models.VisibilityPublic, p.Visibility)
	}

	s.Equal(2, count(s.posts.List(s.ctx, &dto.ListPostsQuery{}, s.alice)))
	s.Equal(2, count(s.posts.List(s.ctx, &dto.ListPostsQuery{}, s.bob)))
	s.Equal(3, count(s.posts.List(s.ctx, &dto.ListPostsQuery{}, s.admin)))

	// Filters are ANDed with the visibility rule.
	s.Equal(0, count(s.posts.List(s.ctx, &dto.ListPostsQuery{Visibility: models.VisibilityPrivate}, nil)))
	s.Equal(1, count(s.posts.List(s.ctx, &dto.ListPostsQuery{Visibility: models.VisibilityPrivate}, s.bob)))
	s.Equal(1, count(s.posts.List(s.ctx, &dto.ListPostsQuery{Search: "private", AuthorID: s.alice.ID.String()}, s.admin)))
}

func (s *serviceSuite) TestListPostsCategorySortAndPaging() {
	cat, err := s.categories.Create(s.ctx, &dto.CreateCategoryRequest{Name: "Go"}, s.admin)
	s.Require().NoError(err)

	first, err := s.posts.Create(s.ctx, &dto.CreatePostRequest{
		Title:       "Tagged",
		ContentJSON: json.RawMessage(`{}`),
		Status:      models.PostStatusPublished,
		CategoryIDs: []uuid.UUID{cat.ID, cat.ID},
	}, s.alice)
	s.Require().NoError(err)
	s.Require().Len(first.Categories, 1)
	s.NotNil(first.PublishedAt)

	s.createPost("Untagged", models.VisibilityPublic, s.alice)

	tagged, err := s.posts.List(s.ctx, &dto.ListPostsQuery{CategoryID: cat.ID.String()}, nil)
	s.Require().NoError(err)
	s.Require().Len(tagged, 1)
	s.Equal(first.ID, tagged[0].ID)

	newest, err := s.posts.List(s.ctx, &dto.ListPostsQuery{Take: 1}, nil)
	s.Require().NoError(err)
	s.Require().Len(newest, 1)
	s.Equal("untagged", newest[0].Slug)

	oldest, err := s.posts.List(s.ctx, &dto.ListPostsQuery{Sort: models.SortCreatedAtAsc, Take: 1}, nil)
	s.Require().NoError(err)
	s.Equal(first.ID, oldest[0].ID)

	published, err := s.posts.List(s.ctx, &dto.ListPostsQuery{Sort: models.SortPublishedAtDesc}, nil)
	s.Require().NoError(err)
	s.Equal(first.ID, published[0].ID, "unpublished posts sort last")

	skipped, err := s.posts.List(s.ctx, &dto.ListPostsQuery{Skip: 5}, nil)
	s.Require().NoError(err)
	s.Empty(skipped)

	_, err = s.posts.List(s.ctx, &dto.ListPostsQuery{AuthorID: "not-a-uuid"}, nil)
	s.ErrorIs(err, apperror.ErrValidationFailed)
}

func (s *serviceSuite) TestCreatePostUnknownCategory() {
	_, err := s.posts.Create(s.ctx, &dto.CreatePostRequest{
		Title:       "Orphan",
		ContentJSON: json.RawMessage(`{}`),
		CategoryIDs: []uuid.UUID{uuid.New()},
	}, s.alice)
	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *serviceSuite) TestPublishingStampsOnce() {
	post := s.createPost("Draft", models.VisibilityPublic, s.alice)
	s.Nil(post.PublishedAt)

	published, err := s.posts.Update(s.ctx, post.ID, &dto.UpdatePostRequest{Status: models.PostStatusPublished}, s.alice)
	s.Require().NoError(err)
	s.Require().NotNil(published.PublishedAt)
	stamp := *published.PublishedAt

	archived, err := s.posts.Update(s.ctx, post.ID, &dto.UpdatePostRequest{Status: models.PostStatusArchived}, s.alice)
	s.Require().NoError(err)
	s.Equal(stamp, *archived.PublishedAt)
}

func (s *serviceSuite) TestSetCoverRequiresFileOwnership() {
	post := s.createPost("Covered", models.VisibilityPublic, s.alice)
	own := s.upload("cover.png", "image/png", "png", models.VisibilityPublic, s.alice)
	foreign := s.upload("theirs.png", "image/png", "png", models.VisibilityPublic, s.bob)

	_, err := s.posts.SetCover(s.ctx, post.ID, foreign.ID, s.alice)
	s.ErrorIs(err, apperror.ErrForbidden)

	_, err = s.posts.SetCover(s.ctx, post.ID, uuid.New(), s.alice)
	s.ErrorIs(err, ErrFileNotFound)

	updated, err := s.posts.SetCover(s.ctx, post.ID, own.ID, s.alice)
	s.Require().NoError(err)
	s.Equal(own.ID, *updated.CoverFileID)

	cleared, err := s.posts.ClearCover(s.ctx, post.ID, s.alice)
	s.Require().NoError(err)
	s.Nil(cleared.CoverFileID)

	_, err = s.posts.SetCover(s.ctx, post.ID, foreign.ID, s.admin)
	s.NoError(err, "admins may use any file")
}
