// Package validation wraps go-playground/validator for request and entity checks.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"rentacar-backend/internal/domain"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()

		// Use JSON tag names for error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		registerCustomValidations(validate)
	})

	return validate
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("plate", validatePlate)
	v.RegisterValidation("category", validateCategory)
}

// Plates are 6 to 8 letters and digits, optionally separated by spaces or dashes.
var plateRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 -]{4,8}[A-Za-z0-9]$`)

func validatePlate(fl validator.FieldLevel) bool {
	return plateRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateCategory(fl validator.FieldLevel) bool {
	_, err := domain.ParseCategory(fl.Field().String())
	return err == nil
}

// Validate validates a struct and returns ValidationErrors on failure.
func Validate(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}
	if parsed := ParseValidationErrors(err); len(parsed) > 0 {
		return parsed
	}
	return err
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var sb strings.Builder
	for i, e := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Field)
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// ParseValidationErrors converts validator.ValidationErrors to our format.
func ParseValidationErrors(err error) ValidationErrors {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(ValidationErrors, 0, len(ve))
	for _, e := range ve {
		out = append(out, ValidationError{Field: e.Field(), Message: getErrorMessage(e)})
	}
	return out
}

func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "e164":
		return "must be a valid phone number in E.164 format"
	case "numeric":
		return "must contain digits only"
	case "plate":
		return "must be a valid licence plate"
	case "category":
		return "must be one of: compact, sedan, suv"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "gtfield":
		return "must be after " + e.Param()
	default:
		return "is invalid"
	}
}
