package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benx421/account-api/internal/models"
)

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
	// Field names the offending input field for validation and conflict errors.
	Field string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeValidation    = "validation_error"
	ErrCodeConflict      = "conflict"
	ErrCodeNotFound      = "not_found"
	ErrCodeInternalError = "internal_error"
)

func newConflictError(field, value string) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeConflict,
		Field:   field,
		Message: fmt.Sprintf("%s %s already in use", capitalize(field), value),
		Err:     models.ErrDuplicateAccount,
	}
}

func newAccountNotFoundError(id int64) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("Account with id %d not found", id),
		Err:     models.ErrNotFound,
	}
}

func newInternalError(message string, err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeInternalError,
		Message: message,
		Err:     err,
	}
}

// translateError converts repository errors into service errors. ServiceErrors
// pass through untouched.
func translateError(id int64, message string, err error) error {
	if err == nil {
		return nil
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	var conflict *models.ConflictError
	if errors.As(err, &conflict) {
		return newConflictError(conflict.Field, conflict.Value)
	}
	if errors.Is(err, models.ErrDuplicateAccount) {
		return &ServiceError{Code: ErrCodeConflict, Message: "account already exists", Err: err}
	}
	if errors.Is(err, models.ErrNotFound) {
		return newAccountNotFoundError(id)
	}

	return newInternalError(message, err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
