package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Take     int    `query:"take" validate:"omitempty,min=1,max=100"`
}

func TestStructReportsFieldErrorsByJSONName(t *testing.T) {
	v := New()

	err := v.Struct(&signup{Email: "nope", Password: "short", Take: 500})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidationFailed))

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	details, ok := appErr.Details.(apperror.FieldErrors)
	require.True(t, ok)

	assert.Contains(t, details.FieldErrors, "email")
	assert.Contains(t, details.FieldErrors, "password")
	assert.Contains(t, details.FieldErrors, "take")
	assert.Equal(t, []string{"email must be a valid email address"}, details.FieldErrors["email"])
}

func TestStructAcceptsValidInput(t *testing.T) {
	assert.NoError(t, New().Struct(&signup{Email: "a@b.co", Password: "longenough"}))
}

type credentials struct {
	Password string `json:"password" validate:"required,bcryptmax"`
}

func TestBcryptMaxCountsBytes(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(&credentials{Password: strings.Repeat("a", 72)}))
	assert.NoError(t, v.Struct(&credentials{Password: strings.Repeat("é", 36)}))

	err := v.Struct(&credentials{Password: strings.Repeat("é", 40)})
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	details := appErr.Details.(apperror.FieldErrors)
	assert.Equal(t, []string{"password must be at most 72 bytes long"}, details.FieldErrors["password"])
}
