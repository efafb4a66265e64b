package apperr

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// FromValidation collapses validator output into a single Validation error
// with one aggregated message.
func FromValidation(err error) *Error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Wrap(Validation, err, "invalid request payload")
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fieldMessage(fe))
	}
	return Wrap(Validation, err, strings.Join(parts, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " is too short"
	case "max":
		return field + " is too long"
	case "gt", "gte":
		return field + " is below the allowed minimum"
	case "lte":
		return field + " is above the allowed maximum"
	case "uri":
		return field + " must be a well-formed URI"
	case "email":
		return field + " must be a valid email address"
	case "nohtml":
		return field + " must not include HTML"
	default:
		return field + " is invalid"
	}
}
