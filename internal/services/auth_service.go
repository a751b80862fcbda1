package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
)

type AuthService struct {
	users         repository.UserRepository
	tokens        *auth.TokenService
	verify        func(plain, hash string) bool
	verifyMissing func(plain string) bool
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		users:         users,
		tokens:        tokens,
		verify:        auth.VerifyPassword,
		verifyMissing: auth.VerifyMissing,
	}
}

// Register creates an active USER account and signs it in.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: &hash,
		Name:     req.Name,
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID.String())
	return s.signIn(user)
}

// Login fails with ErrInvalidCredentials for unknown emails, accounts without
// a password and wrong passwords alike. ErrAccountInactive is only returned
// once the password has been proven.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.rejectCredentials(req.Password)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.HasPassword() {
		return nil, s.rejectCredentials(req.Password)
	}
	if !s.verify(req.Password, *user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return s.signIn(user)
}

// rejectCredentials pays for a bcrypt comparison before failing so unknown
// emails answer as slowly as wrong passwords.
func (s *AuthService) rejectCredentials(password string) error {
	s.verifyMissing(password)
	return ErrInvalidCredentials
}

// SetPassword lets an invited account choose its first password.
func (s *AuthService) SetPassword(ctx context.Context, req *dto.SetPasswordRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPasswordNotSettable
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.HasPassword() || !user.IsActive {
		return nil, ErrPasswordNotSettable
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user.Password = &hash
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store password: %w", err)
	}

	return s.signIn(user)
}

// Me returns the caller's account, or nil for anonymous callers and
// identities whose account no longer exists.
func (s *AuthService) Me(ctx context.Context, actor *auth.Identity) (*models.User, error) {
	if actor == nil {
		return nil, nil
	}
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *AuthService) signIn(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
