package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
	"github.com/google/uuid"
)

type UserService struct {
	users repository.UserRepository
	files repository.FileRepository
}

func NewUserService(users repository.UserRepository, files repository.FileRepository) *UserService {
	return &UserService{users: users, files: files}
}

func (s *UserService) List(ctx context.Context, query dto.ListUsersQuery, actor *auth.Identity) ([]models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, repository.UserFilter{IsActive: query.IsActive})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListPending returns accounts waiting for approval.
func (s *UserService) ListPending(ctx context.Context, actor *auth.Identity) ([]models.User, error) {
	inactive := false
	return s.List(ctx, dto.ListUsersQuery{IsActive: &inactive}, actor)
}

func (s *UserService) Approve(ctx context.Context, id uuid.UUID, actor *auth.Identity) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "failed to load user")
	}
	if user.IsActive {
		return nil, ErrUserAlreadyActive
	}

	user.IsActive = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to approve user: %w", err)
	}
	slog.Info("user approved", "user_id", user.ID.String(), "by", actor.ID.String())
	return user, nil
}

func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID, actor *auth.Identity) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "failed to load user")
	}

	user.IsActive = false
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to deactivate user: %w", err)
	}
	slog.Info("user deactivated", "user_id", user.ID.String(), "by", actor.ID.String())
	return user, nil
}

// GetProfile returns the full account of id to the account itself or an admin.
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID, actor *auth.Identity) (*models.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !access.CanModifyOwned(id, actor) {
		return nil, apperror.ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "failed to load user")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *dto.UpdateProfileRequest, actor *auth.Identity) (*models.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !access.CanModifyOwned(id, actor) {
		return nil, apperror.ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "failed to load user")
	}

	for _, fileID := range []*uuid.UUID{req.ProfilePictureID, req.CVFileID} {
		if fileID == nil {
			continue
		}
		if _, err := loadAttachableFile(ctx, s.files, *fileID, actor); err != nil {
			return nil, err
		}
	}

	assign(&user.Name, req.Name)
	assign(&user.AboutMe, req.AboutMe)
	assign(&user.Facebook, req.Facebook)
	assign(&user.Twitter, req.Twitter)
	assign(&user.Linkedin, req.Linkedin)
	assign(&user.Phone, req.Phone)
	assign(&user.Website, req.Website)
	if req.ProfilePictureID != nil {
		user.ProfilePictureID = req.ProfilePictureID
	}
	if req.CVFileID != nil {
		user.CVFileID = req.CVFileID
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// GetPublicProfile hides inactive accounts.
func (s *UserService) GetPublicProfile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "failed to load user")
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}
	profile := user.PublicProfile()
	return &profile, nil
}

func (s *UserService) ListPublicProfiles(ctx context.Context) ([]models.PublicProfile, error) {
	active := true
	users, err := s.users.List(ctx, repository.UserFilter{IsActive: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].PublicProfile())
	}
	return profiles, nil
}

// loadAttachableFile loads a file the actor may reference from their own records.
func loadAttachableFile(ctx context.Context, files repository.FileRepository, id uuid.UUID, actor *auth.Identity) (*models.File, error) {
	file, err := files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	if !access.CanModifyOwned(file.OwnerID, actor) {
		return nil, apperror.ErrForbidden
	}
	return file, nil
}

func assign(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}
