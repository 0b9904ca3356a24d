package models

import (
	"errors"
	"fmt"
)

// Domain errors that can be returned by repositories
var (
	// ErrDuplicateAccount indicates an account with the same username or email already exists
	ErrDuplicateAccount = errors.New("duplicate account")

	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")
)

// Account fields guarded by a uniqueness rule.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
)

// ConflictError names the field whose value collided with an existing account.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already in use", e.Field, e.Value)
}

// Is matches ErrDuplicateAccount.
func (e *ConflictError) Is(target error) bool {
	return target == ErrDuplicateAccount
}
