package form

import (
	"fmt"

	"github.com/cfohub/cfohub/internal/shared"
)

// ValidationError reports the first rule a draft failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldName returns the JSON name of the offending field.
func (e *ValidationError) FieldName() string {
	return e.Field
}

func (e *ValidationError) Unwrap() error {
	return shared.ErrValidation
}

// Invalid builds a ValidationError for field.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
