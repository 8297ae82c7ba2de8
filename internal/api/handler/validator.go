package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// The "clinicrole" tag accepts only the roles the backend knows.
func NewValidator() *echoValidator {
	v := validator.New()
	_ = v.RegisterValidation("clinicrole", func(fl validator.FieldLevel) bool {
		return domain.ValidRole(fl.Field().String())
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. The raw
// validator.ValidationErrors are returned unchanged so callers can render
// per-field messages with fieldErrors.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}

// fieldErrors converts a validation error into field → message pairs for
// inline rendering next to the offending inputs.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["form"] = "invalid input"
		return out
	}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		out[field] = fieldError(field, fe)
	}
	return out
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "clinicrole":
		return field + " must be admin, optometrista or recepcionista"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
