package middleware

import (
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKey    = "jwt"
	identityKey = "identity"
)

// Authenticate resolves the bearer token into an identity when one is present
// and valid. It never rejects a request: missing, malformed and invalid tokens
// all continue as anonymous.
func Authenticate(tokens *auth.TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:    tokens.KeyFunc,
		ContextKey: tokenKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			if token, ok := c.Locals(tokenKey).(*jwt.Token); ok {
				if id := auth.IdentityFromToken(token); id != nil {
					c.Locals(identityKey, id)
				}
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Next()
		},
	})
}

// Identity returns the caller resolved by Authenticate, or nil.
func Identity(c *fiber.Ctx) *auth.Identity {
	id, _ := c.Locals(identityKey).(*auth.Identity)
	return id
}

// RequireAuth rejects anonymous callers with 401.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Identity(c) == nil {
			return apperror.ErrUnauthorized
		}
		return c.Next()
	}
}

// RequireRole rejects anonymous callers with 401 and callers without role with 403.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := Identity(c)
		if id == nil {
			return apperror.ErrUnauthorized
		}
		if id.Role != role {
			return apperror.Forbidden("Forbidden")
		}
		return c.Next()
	}
}
