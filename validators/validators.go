// Package validators plugs go-playground/validator into Echo so every
// handler can call c.Validate on a bound request struct.
package validators

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator implements echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

// NewValidator creates the validator wired into the Echo instance.
func NewValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate runs struct-tag validation and maps failures to a 422 with
// per-field messages, so forms can re-render with the offending fields.
func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, FieldErrors(err))
	}
	return nil
}

// FieldErrors flattens a validator error into field -> message.
func FieldErrors(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["_"] = err.Error()
		return fields
	}
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = "is required"
		case "min":
			fields[name] = "must be at least " + fe.Param() + " characters"
		case "max":
			fields[name] = "must be at most " + fe.Param() + " characters"
		case "email":
			fields[name] = "must be a valid email address"
		case "url":
			fields[name] = "must be a valid URL"
		case "eqfield":
			fields[name] = "does not match"
		default:
			fields[name] = "is invalid"
		}
	}
	return fields
}
