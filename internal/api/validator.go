package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateForm validates a form struct using its tags and returns a
// structured result: nil when valid, otherwise a field → message map
// decoupled from any rendering concern.
func validateForm(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs := make(map[string]string)
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fieldErrs["form"] = "invalid input"
		return fieldErrs
	}
	for _, fe := range validationErrs {
		field := strings.ToLower(fe.Field())
		fieldErrs[field] = messageFor(field, fe)
	}
	return fieldErrs
}

func messageFor(field string, fe validator.FieldError) string {
	if field == "password" {
		return "Password must be at least 8 characters long and contain only letters and numbers."
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of the listed choices", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
