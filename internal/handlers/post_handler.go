package handlers

import (
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	postService  *services.PostService
	imageService *services.PostImageService
	validator    *validation.Validator
}

func NewPostHandler(postService *services.PostService, imageService *services.PostImageService, v *validation.Validator) *PostHandler {
	return &PostHandler{postService: postService, imageService: imageService, validator: v}
}

// List is open to everyone; anonymous callers only ever see PUBLIC posts.
func (h *PostHandler) List(c *fiber.Ctx) error {
	var query dto.ListPostsQuery
	if err := bindQuery(c, h.validator, &query); err != nil {
		return err
	}

	posts, err := h.postService.List(c.UserContext(), &query, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(posts)
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postService.Get(c.UserContext(), id, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(post)
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	post, err := h.postService.Create(c.UserContext(), &req, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdatePostRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	post, err := h.postService.Update(c.UserContext(), id, &req, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(post)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.postService.Delete(c.UserContext(), id, middleware.Identity(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PostHandler) SetCover(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SetCoverRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	post, err := h.postService.SetCover(c.UserContext(), id, req.FileID, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(post)
}

func (h *PostHandler) ClearCover(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postService.ClearCover(c.UserContext(), id, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(post)
}

func (h *PostHandler) ListImages(c *fiber.Ctx) error {
	postID, err := paramID(c, "postId")
	if err != nil {
		return err
	}

	images, err := h.imageService.List(c.UserContext(), postID, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(images)
}

func (h *PostHandler) AddImage(c *fiber.Ctx) error {
	postID, err := paramID(c, "postId")
	if err != nil {
		return err
	}
	var req dto.AddPostImageRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	image, err := h.imageService.Add(c.UserContext(), postID, &req, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

// RemoveImage reads the file id from the JSON body of the DELETE request.
func (h *PostHandler) RemoveImage(c *fiber.Ctx) error {
	postID, err := paramID(c, "postId")
	if err != nil {
		return err
	}
	var req dto.RemovePostImageRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}

	if err := h.imageService.Remove(c.UserContext(), postID, &req, middleware.Identity(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
