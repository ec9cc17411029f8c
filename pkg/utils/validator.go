package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ISO-8601 timestamp with a mandatory zone designator, e.g. 2025-02-14T11:47:46.125Z.
var isoTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("isotime", func(fl validator.FieldLevel) bool {
		return isoTimeRegex.MatchString(fl.Field().String())
	})

	return v
}

// ValidateStruct returns one "field: message" entry per failed constraint,
// or nil when data is valid.
func ValidateStruct(data any) []string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	errors := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		errors = append(errors, fmt.Sprintf("%s: %s", fe.Field(), getErrorMessage(fe)))
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s should not be empty", err.Field())
	case "min":
		return fmt.Sprintf("%s must not be less than %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must not be greater than %s", err.Field(), err.Param())
	case "isotime":
		return fmt.Sprintf("%s must be a full ISO date with timezone (e.g. 2025-02-14T11:47:46.125Z)", err.Field())
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}
