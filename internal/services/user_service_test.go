package services

import (
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/google/uuid"
)

func strPtr(v string) *string { return &v }

func (s *serviceSuite) TestUserAdministration() {
	_, err := s.users.List(s.ctx, dto.ListUsersQuery{}, s.alice)
	s.ErrorIs(err, ErrAdminRequired)

	all, err := s.users.List(s.ctx, dto.ListUsersQuery{}, s.admin)
	s.Require().NoError(err)
	s.Len(all, 3)

	_, err = s.users.Approve(s.ctx, s.bob.ID, s.admin)
	s.ErrorIs(err, ErrUserAlreadyActive)

	_, err = s.users.Deactivate(s.ctx, s.bob.ID, s.admin)
	s.Require().NoError(err)

	pending, err := s.users.ListPending(s.ctx, s.admin)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(s.bob.ID, pending[0].ID)

	approved, err := s.users.Approve(s.ctx, s.bob.ID, s.admin)
	s.Require().NoError(err)
	s.True(approved.IsActive)

	_, err = s.users.Approve(s.ctx, uuid.New(), s.admin)
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *serviceSuite) TestProfileSelfOrAdmin() {
	_, err := s.users.GetProfile(s.ctx, s.alice.ID, s.bob)
	s.ErrorIs(err, apperror.ErrForbidden)

	_, err = s.users.GetProfile(s.ctx, s.alice.ID, nil)
	s.ErrorIs(err, apperror.ErrUnauthorized)

	updated, err := s.users.UpdateProfile(s.ctx, s.alice.ID, &dto.UpdateProfileRequest{
		Name:    strPtr("Alice"),
		AboutMe: strPtr("Writes about Go."),
	}, s.alice)
	s.Require().NoError(err)
	s.Equal("Alice", *updated.Name)

	byAdmin, err := s.users.UpdateProfile(s.ctx, s.alice.ID, &dto.UpdateProfileRequest{Website: strPtr("https://alice.dev")}, s.admin)
	s.Require().NoError(err)
	s.Equal("Alice", *byAdmin.Name, "absent fields are kept")
	s.Equal("https://alice.dev", *byAdmin.Website)

	_, err = s.users.UpdateProfile(s.ctx, s.alice.ID, &dto.UpdateProfileRequest{Name: strPtr("Mallory")}, s.bob)
	s.ErrorIs(err, apperror.ErrForbidden)
}

func (s *serviceSuite) TestProfilePictureMustBeOwned() {
	foreign := s.upload("bob.png", "image/png", "b", models.VisibilityPublic, s.bob)
	own := s.upload("alice.png", "image/png", "a", models.VisibilityPublic, s.alice)

	_, err := s.users.UpdateProfile(s.ctx, s.alice.ID, &dto.UpdateProfileRequest{ProfilePictureID: &foreign.ID}, s.alice)
	s.ErrorIs(err, apperror.ErrForbidden)

	updated, err := s.users.UpdateProfile(s.ctx, s.alice.ID, &dto.UpdateProfileRequest{ProfilePictureID: &own.ID}, s.alice)
	s.Require().NoError(err)
	s.Equal(own.ID, *updated.ProfilePictureID)
}

func (s *serviceSuite) TestPublicProfiles() {
	_, err := s.users.Deactivate(s.ctx, s.bob.ID, s.admin)
	s.Require().NoError(err)

	profiles, err := s.users.ListPublicProfiles(s.ctx)
	s.Require().NoError(err)
	s.Len(profiles, 2)

	_, err = s.users.GetPublicProfile(s.ctx, s.bob.ID)
	s.ErrorIs(err, ErrUserNotFound)

	profile, err := s.users.GetPublicProfile(s.ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Equal(s.alice.ID, profile.ID)
}
