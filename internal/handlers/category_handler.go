package handlers

import (
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	validator       *validation.Validator
}

func NewCategoryHandler(categoryService *services.CategoryService, v *validation.Validator) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: v}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categoryService.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.categoryService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	category, err := h.categoryService.Create(c.UserContext(), &req, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.categoryService.Delete(c.UserContext(), id, middleware.Identity(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
