// Package access holds the ownership and visibility rules shared by every
// resource. The predicates are pure; callers decide which error to return.
package access

import (
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/google/uuid"
)

func IsAdmin(actor *auth.Identity) bool {
	return actor.IsAdmin()
}

// CanModifyOwned reports whether actor may mutate a resource owned by ownerID.
func CanModifyOwned(ownerID uuid.UUID, actor *auth.Identity) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.ID == ownerID
}

// CanView reports whether actor may read a resource with the given visibility.
func CanView(visibility models.Visibility, ownerID uuid.UUID, actor *auth.Identity) bool {
	if visibility == models.VisibilityPublic {
		return true
	}
	return CanModifyOwned(ownerID, actor)
}
