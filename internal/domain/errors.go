package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the category of every field constraint violation / Catégorie des violations de contraintes de champ
var ErrValidation = errors.New("validation error")

// FieldError reports one invalid field / Signale un champ invalide
type FieldError struct {
	Field   string
	Message string
}

// Error implements error / Implémente error
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap exposes the validation category to errors.Is / Expose la catégorie à errors.Is
func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// invalid builds a FieldError / Construit une FieldError
func invalid(field, format string, args ...any) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}
