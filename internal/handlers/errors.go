package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/middleware"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler serializes every error as {message, details}. Domain errors
// keep their status and message; 5xx responses never expose internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	resp := dto.ErrorResponse{Message: "Internal server error"}

	var fiberErr *fiber.Error
	if appErr, ok := apperror.As(err); ok {
		code = appErr.Code
		resp = dto.ErrorResponse{Message: appErr.Message, Details: appErr.Details}
	} else if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		resp.Message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"request_id", requestID(c),
			"error", err.Error(),
		}
		if id := middleware.Identity(c); id != nil {
			attrs = append(attrs, "user_id", id.ID.String())
		}
		slog.Error("unhandled server error", attrs...)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		resp = dto.ErrorResponse{Message: "Internal server error"}
	}

	return c.Status(code).JSON(resp)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
