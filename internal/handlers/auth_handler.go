package handlers

import (
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	validator   *validation.Validator
}

func NewAuthHandler(authService *services.AuthService, v *validation.Validator) *AuthHandler {
	return &AuthHandler{authService: authService, validator: v}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *AuthHandler) SetPassword(c *fiber.Ctx) error {
	var req dto.SetPasswordRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.authService.SetPassword(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Me responds with the caller's account or JSON null.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}
