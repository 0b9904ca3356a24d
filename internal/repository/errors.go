package repository

import (
	"errors"

	"github.com/benx421/account-api/internal/models"
	"github.com/lib/pq"
)

const uniqueViolation pq.ErrorCode = "23505"

// Unique constraint names from the accounts migration
const (
	constraintUsername = "accounts_username_key"
	constraintEmail    = "accounts_email_key"
)

// asUniqueViolation converts a unique-constraint failure on accounts into a
// ConflictError naming the colliding field. It returns nil for anything else.
func asUniqueViolation(err error, username, email string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return nil
	}

	switch pqErr.Constraint {
	case constraintEmail:
		return &models.ConflictError{Field: models.FieldEmail, Value: email}
	case constraintUsername:
		return &models.ConflictError{Field: models.FieldUsername, Value: username}
	default:
		return models.ErrDuplicateAccount
	}
}
