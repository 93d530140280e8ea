package utils

import (
	"errors"
	"strings"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrMissingOrMalformedToken = errors.New("authorization header missing or malformed")
	ErrInvalidToken            = errors.New("invalid token")
	ErrExpiredToken            = errors.New("token expired")
	ErrInvalidCredentials      = errors.New("invalid credentials")

	ErrForbiddenRole  = errors.New("role not allowed for this resource")
	ErrForbiddenOwner = errors.New("resource belongs to another account")
	ErrNotLinked      = errors.New("client is not actively linked to this therapist")

	ErrNotFound        = errors.New("resource not found")
	ErrAccountNotFound = errors.New("account not found")

	ErrEmailAlreadyExists       = errors.New("email already registered")
	ErrAlreadyLinked            = errors.New("client already linked")
	ErrInviteExists             = errors.New("pending invite already exists for this email")
	ErrEmailBelongsToTherapist  = errors.New("email belongs to a therapist account")
	ErrWriteConflict            = errors.New("write conflict")
	ErrInvalidSessionTransition = errors.New("invalid session status transition")

	ErrInvalidOperationOnInvite = errors.New("operation not allowed on a pending invite")

	ErrDatabaseError = errors.New("database error")
)

// FieldIssue is one field-level validation problem.
type FieldIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ValidationError collects field issues. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Issues []FieldIssue
}

func NewValidationError(field, issue string) *ValidationError {
	return &ValidationError{Issues: []FieldIssue{{Field: field, Issue: issue}}}
}

func (e *ValidationError) Add(field, issue string) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Issue: issue})
}

// OrNil returns nil when no issue was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+" "+is.Issue)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
