package services

import (
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/google/uuid"
)

func intPtr(v int) *int { return &v }

func (s *serviceSuite) TestAddPostImageUpserts() {
	post := s.createPost("Gallery", models.VisibilityPublic, s.alice)
	file := s.upload("one.png", "image/png", "1", models.VisibilityPublic, s.alice)

	first, err := s.images.Add(s.ctx, post.ID, &dto.AddPostImageRequest{FileID: file.ID}, s.alice)
	s.Require().NoError(err)
	s.Equal(0, first.Sort)

	_, err = s.images.Add(s.ctx, post.ID, &dto.AddPostImageRequest{FileID: file.ID, Sort: intPtr(5)}, s.alice)
	s.Require().NoError(err)

	images, err := s.images.List(s.ctx, post.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(images, 1)
	s.Equal(5, images[0].Sort)
}

func (s *serviceSuite) TestAddPostImageChecksBothOwners() {
	post := s.createPost("Alice's", models.VisibilityPublic, s.alice)
	aliceFile := s.upload("a.png", "image/png", "a", models.VisibilityPublic, s.alice)
	bobFile := s.upload("b.png", "image/png", "b", models.VisibilityPublic, s.bob)

	_, err := s.images.Add(s.ctx, post.ID, &dto.AddPostImageRequest{FileID: aliceFile.ID}, s.bob)
	s.ErrorIs(err, apperror.ErrForbidden, "bob does not own the post")

	_, err = s.images.Add(s.ctx, post.ID, &dto.AddPostImageRequest{FileID: bobFile.ID}, s.alice)
	s.ErrorIs(err, apperror.ErrForbidden, "alice does not own the file")

	_, err = s.images.Add(s.ctx, post.ID, &dto.AddPostImageRequest{FileID: uuid.New()}, s.alice)
	s.ErrorIs(err, ErrFileNotFound)

	_, err = s.images.Add(s.ctx, uuid.New(), &dto.AddPostImageRequest{FileID: aliceFile.ID}, s.alice)
	s.ErrorIs(err, ErrPostNotFound)

	_, err = s.images.Add(s.ctx, post.ID, &dto.AddPostImageRequest{FileID: bobFile.ID}, s.admin)
	s.NoError(err)
}

func (s *serviceSuite) TestRemovePostImage() {
	post := s.createPost("Strip", models.VisibilityPublic, s.alice)
	file := s.upload("x.png", "image/png", "x", models.VisibilityPublic, s.alice)
	_, err := s.images.Add(s.ctx, post.ID, &dto.AddPostImageRequest{FileID: file.ID}, s.alice)
	s.Require().NoError(err)

	req := &dto.RemovePostImageRequest{FileID: file.ID}
	s.ErrorIs(s.images.Remove(s.ctx, post.ID, req, s.bob), apperror.ErrForbidden)
	s.NoError(s.images.Remove(s.ctx, post.ID, req, s.alice))
	s.ErrorIs(s.images.Remove(s.ctx, post.ID, req, s.alice), ErrPostImageNotFound)
}

func (s *serviceSuite) TestPrivatePostImagesHidden() {
	post := s.createPost("Hidden", models.VisibilityPrivate, s.alice)

	_, err := s.images.List(s.ctx, post.ID, nil)
	s.ErrorIs(err, apperror.ErrForbidden)
}
