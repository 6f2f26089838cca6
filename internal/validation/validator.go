// Package validation provides HTTP request validation utilities using the validator/v10 library.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"folio/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validator wraps go-playground/validator with AppError conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator with JSON field names and the custom "slug",
// "optionalurl" and "notblank" tags.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return ValidateArticleSlug(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("optionalurl", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || isHTTPURL(s)
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a VALIDATION_ERROR AppError listing each bad field.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return models.NewValidationError(err.Error())
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	names := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
		names = append(names, e.Field()+" "+fieldErrors[e.Field()])
	}

	return models.NewFieldValidationError("Validation failed: "+strings.Join(names, "; "), fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return "must have at least " + e.Param() + " items"
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return "must have at most " + e.Param() + " items"
	case "url", "optionalurl":
		return "must be a valid URL"
	case "slug":
		return "must be lowercase letters, numbers and hyphens"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
