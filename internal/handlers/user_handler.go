package handlers

import (
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
	validator   *validation.Validator
}

func NewUserHandler(userService *services.UserService, v *validation.Validator) *UserHandler {
	return &UserHandler{userService: userService, validator: v}
}

// List returns all users, optionally filtered by ?isActive=. Admin only.
func (h *UserHandler) List(c *fiber.Ctx) error {
	var query dto.ListUsersQuery
	if err := bindQuery(c, h.validator, &query); err != nil {
		return err
	}

	users, err := h.userService.List(c.UserContext(), query, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *UserHandler) ListPending(c *fiber.Ctx) error {
	users, err := h.userService.ListPending(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *UserHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.Approve(c.UserContext(), id, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.Deactivate(c.UserContext(), id, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.GetProfile(c.UserContext(), id, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateProfile edits the profile named by :id, or the caller's own profile
// when the route has no id.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	actor := middleware.Identity(c)

	var req dto.UpdateProfileRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	id := actor.ID
	if c.Params("id") != "" {
		parsed, err := paramID(c, "id")
		if err != nil {
			return err
		}
		id = parsed
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), id, &req, actor)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) ListPublic(c *fiber.Ctx) error {
	profiles, err := h.userService.ListPublicProfiles(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(profiles)
}

func (h *UserHandler) GetPublic(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.userService.GetPublicProfile(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
