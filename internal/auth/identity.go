// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

import (
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/google/uuid"
)

// Identity is the authenticated caller. A nil *Identity means anonymous.
type Identity struct {
	ID    uuid.UUID
	Email string
	Role  models.Role
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}
