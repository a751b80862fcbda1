package handlers

import (
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errInvalidBody = apperror.BadRequest("Invalid request body")

// bindJSON decodes the body into dst and validates it.
func bindJSON(c *fiber.Ctx, v *validation.Validator, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	return v.Struct(dst)
}

// bindQuery decodes the query string into dst and validates it.
func bindQuery(c *fiber.Ctx, v *validation.Validator, dst interface{}) error {
	if err := c.QueryParser(dst); err != nil {
		return apperror.Validation(map[string][]string{"query": {err.Error()}})
	}
	return v.Struct(dst)
}

// paramID parses a UUID route parameter.
func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Validation(map[string][]string{name: {name + " must be a valid UUID"}})
	}
	return id, nil
}
