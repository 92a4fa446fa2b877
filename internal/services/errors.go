package services

import (
	"errors"
	"fmt"

	"github.com/sjperalta/cabinet-api/internal/access"
	"gorm.io/gorm"
)

// ValidationError signals missing or invalid input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError signals that a referenced record does not exist
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AuthorizationError signals a missing session, a wrong PIN or a role that may not act
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// StateConflictError signals that the ledger is not in a state that allows the operation
type StateConflictError struct {
	Message string
}

func (e *StateConflictError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func unauthorized(format string, args ...any) error {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &StateConflictError{Message: fmt.Sprintf(format, args...)}
}

// gateError converts an access failure into an AuthorizationError
func gateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, access.ErrNoSession):
		return unauthorized("Not logged in")
	case errors.Is(err, access.ErrRoleNotAllowed):
		return unauthorized("Unauthorized")
	default:
		return unauthorized("%s", err.Error())
	}
}

// lookupError turns gorm's not-found into a NotFoundError and wraps anything else
func lookupError(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("%s not found", what)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

// IsDomainError reports whether err is one of the ledger's own error kinds
func IsDomainError(err error) bool {
	var (
		v *ValidationError
		n *NotFoundError
		a *AuthorizationError
		c *StateConflictError
	)
	return errors.As(err, &v) || errors.As(err, &n) || errors.As(err, &a) || errors.As(err, &c)
}
