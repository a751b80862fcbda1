package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
)

var (
	ErrEmailTaken          = apperror.Conflict("Email already in use")
	ErrInvalidCredentials  = apperror.Unauthorized("Invalid credentials")
	ErrAccountInactive     = apperror.Forbidden("Account not approved or deactivated")
	ErrPasswordNotSettable = apperror.BadRequest("Password cannot be set for this account")
	ErrUserNotFound        = apperror.NotFound("User not found")
	ErrUserAlreadyActive   = apperror.BadRequest("User already approved")

	ErrPostNotFound      = apperror.NotFound("Post not found")
	ErrPostSlugTaken     = apperror.Conflict("Slug already exists")
	ErrCategoryNotFound  = apperror.NotFound("Category not found")
	ErrCategorySlugTaken = apperror.Conflict("Category slug already exists")
	ErrFileNotFound      = apperror.NotFound("File not found")
	ErrPostImageNotFound = apperror.NotFound("Post image not found")
	ErrAdminRequired     = apperror.Forbidden("Admin access required")
)

// notFound maps a repository miss to the given domain error and wraps any
// other failure as internal.
func notFound(err error, domain *apperror.Error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireActor(actor *auth.Identity) error {
	if actor == nil {
		return apperror.ErrUnauthorized
	}
	return nil
}

func requireAdmin(actor *auth.Identity) error {
	if actor == nil {
		return apperror.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}
