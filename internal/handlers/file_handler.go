package handlers

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/validation"
	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
)

type FileHandler struct {
	fileService *services.FileService
	validator   *validation.Validator
	maxBytes    int64
	maxFiles    int
}

func NewFileHandler(fileService *services.FileService, v *validation.Validator, maxBytes int64, maxFiles int) *FileHandler {
	return &FileHandler{fileService: fileService, validator: v, maxBytes: maxBytes, maxFiles: maxFiles}
}

func (h *FileHandler) List(c *fiber.Ctx) error {
	files, err := h.fileService.List(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(files)
}

func (h *FileHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	file, err := h.fileService.Get(c.UserContext(), id, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(file)
}

// Content streams the stored bytes with the recorded MIME type.
func (h *FileHandler) Content(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	file, body, err := h.fileService.Open(c.UserContext(), id, middleware.Identity(c))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, file.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", file.OriginalName))
	// fasthttp closes body once the stream is drained.
	return c.SendStream(body, int(file.Size))
}

// Upload accepts a multipart form with a single "file" part plus optional
// visibility and kind fields.
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperror.BadRequest("Expected a multipart/form-data body")
	}

	parts := form.File["file"]
	switch {
	case len(parts) == 0:
		return apperror.Validation(map[string][]string{"file": {"file is a required field"}})
	case len(parts) > h.maxFiles:
		return apperror.BadRequest(fmt.Sprintf("Too many files, at most %d allowed", h.maxFiles))
	case len(parts) > 1:
		return apperror.BadRequest("Upload one file per request")
	}
	header := parts[0]
	if header.Size > h.maxBytes {
		return apperror.New(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File exceeds the %s limit", humanize.IBytes(uint64(h.maxBytes))))
	}

	var meta dto.UploadFileForm
	if err := c.BodyParser(&meta); err != nil {
		return errInvalidBody
	}
	if err := h.validator.Struct(&meta); err != nil {
		return err
	}

	body, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer body.Close()

	mimeType := header.Header.Get(fiber.HeaderContentType)
	if mimeType == "" {
		mimeType = fiber.MIMEOctetStream
	}

	file, err := h.fileService.Upload(c.UserContext(), &services.Upload{
		Body:         body,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Kind:         meta.Kind,
		Visibility:   meta.Visibility,
	}, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(file)
}

func (h *FileHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.fileService.Delete(c.UserContext(), id, middleware.Identity(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
