// Package validation checks request payloads and reports failures as
// field-level details keyed by JSON name.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}
	registerBcryptMax(validate, translator)

	return &Validator{validate: validate, translator: translator}
}

// Struct returns nil or an *apperror.Error describing every invalid field.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.ErrValidationFailed
	}

	details := make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fieldPath(fe.Namespace())
		details[name] = append(details[name], fe.Translate(v.translator))
	}
	return apperror.Validation(details)
}

// bcryptMaxBytes is the longest input bcrypt accepts, counted in bytes.
const bcryptMaxBytes = 72

// registerBcryptMax adds the "bcryptmax" tag, which bounds a string by its
// byte length so multibyte passwords cannot slip past a character count.
func registerBcryptMax(validate *validator.Validate, translator ut.Translator) {
	if err := validate.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= bcryptMaxBytes
	}); err != nil {
		panic(err)
	}
	if err := validate.RegisterTranslation("bcryptmax", translator,
		func(ut ut.Translator) error {
			return ut.Add("bcryptmax", "{0} must be at most 72 bytes long", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("bcryptmax", fe.Field())
			return msg
		},
	); err != nil {
		panic(err)
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
