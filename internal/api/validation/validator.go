package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/osa911/landing/internal/api/sanitization"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the custom tags registered
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names, as the client knows them
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("emailshape", validateEmailShape)
}

// validateNotBlank rejects empty and whitespace-only strings
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateEmailShape checks the loose local@domain.tld shape the form uses
func validateEmailShape(fl validator.FieldLevel) bool {
	return sanitization.IsEmailShaped(fl.Field().String())
}

// ValidationError represents a validation error
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// FormatValidationError formats validation errors into a user-friendly response
func FormatValidationError(err error) []ValidationError {
	var errs []ValidationError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errs = append(errs, ValidationError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Value: e.Param(),
			})
		}
	}
	return errs
}

// HasTag reports whether any failed rule carries tag
func HasTag(errs []ValidationError, tag string) bool {
	for _, e := range errs {
		if e.Tag == tag {
			return true
		}
	}
	return false
}

// HasField reports whether field failed any rule
func HasField(errs []ValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
