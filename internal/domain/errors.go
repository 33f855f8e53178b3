package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrConflict            = errors.New("already exists")
	ErrRegistrationClosed  = errors.New("registration closed")
	ErrOfferingFull        = errors.New("offering is full")
	ErrDuplicateEnrollment = errors.New("already enrolled")
	ErrUnauthorized        = errors.New("authentication required")
	ErrForbidden           = errors.New("admin role required")
)

// ValidationError reports a missing or malformed input field. The
// caller can recover by correcting the field and resubmitting.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
