package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Message formats referenced by tests; keep them in sync with
// ValidationMessage below.
const (
	ErrRequired  = "is required"
	ErrMinValue  = "must be at least %s"
	ErrMaxValue  = "must be at most %s"
	ErrGreater   = "must be greater than %s"
	ErrUnique    = "must not contain duplicates"
	ErrIsInvalid = "is invalid"
)

func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "gt":
		return fmt.Sprintf(ErrGreater, err.Param())
	case "unique":
		return ErrUnique
	default:
		return ErrIsInvalid
	}
}
