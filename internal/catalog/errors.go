package catalog

import (
	"errors"
	"strings"
)

var (
	// ErrValidation marks a rejected add. The concrete error is a *ValidationError.
	ErrValidation = errors.New("invalid product")
	// ErrConfirmationNotFound is returned for unknown or already used tokens.
	ErrConfirmationNotFound = errors.New("confirmation not found")
	// ErrConfirmationExpired is returned when a token outlived its time to live.
	ErrConfirmationExpired = errors.New("confirmation expired")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationError lists every field that made an add fail.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Description
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
