package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConflictError(t *testing.T) {
	err := &ConflictError{Field: FieldEmail, Value: "a@b.io"}

	assert.Equal(t, `email "a@b.io" already in use`, err.Error())
	assert.True(t, errors.Is(err, ErrDuplicateAccount))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrDuplicateAccount))
	assert.False(t, errors.Is(err, ErrNotFound))

	var conflict *ConflictError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &conflict))
	assert.Equal(t, FieldEmail, conflict.Field)
}

func TestAccountUpdate_IsEmpty(t *testing.T) {
	name := "alice"
	assert.True(t, AccountUpdate{}.IsEmpty())
	assert.False(t, AccountUpdate{Username: &name}.IsEmpty())
}
