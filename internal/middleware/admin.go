package middleware

import (
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired guards admin-only routes.
func AdminRequired() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}
