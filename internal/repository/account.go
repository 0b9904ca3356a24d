// Package repository provides data access layer implementations for the account API.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/benx421/account-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	FindAll(ctx context.Context) ([]models.Account, error)
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	UpdateByID(ctx context.Context, id int64, update models.AccountUpdate) error
	DeleteByID(ctx context.Context, id int64) error
}

// accountRepository implements AccountRepository
type accountRepository struct {
	db sqlx.ExtContext
}

// NewAccountRepository creates a new AccountRepository bound to a pool or a session
func NewAccountRepository(database sqlx.ExtContext) AccountRepository {
	return &accountRepository{db: database}
}

const accountColumns = `id, username, email, password, is_admin, is_logged_in, is_verified, created_at, updated_at`

// Create inserts the account and fills in the storage-generated columns
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, is_admin, is_logged_in, is_verified, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, account.Username, account.Email, account.Password).Scan(
		&account.ID,
		&account.IsAdmin,
		&account.IsLoggedIn,
		&account.IsVerified,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if conflict := asUniqueViolation(err, account.Username, account.Email); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// EmailExists reports whether an account already uses email
func (r *accountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`
	if err := sqlx.GetContext(ctx, r.db, &exists, query, email); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// UsernameExists reports whether an account already uses username
func (r *accountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)`
	if err := sqlx.GetContext(ctx, r.db, &exists, query, username); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// FindAll returns every account in insertion order
func (r *accountRepository) FindAll(ctx context.Context) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY id`

	accounts := []models.Account{}
	if err := sqlx.SelectContext(ctx, r.db, &accounts, query); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

// FindByID retrieves an account by id; a missing row yields models.ErrNotFound
func (r *accountRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	var account models.Account
	err := sqlx.GetContext(ctx, r.db, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by id: %w", err)
	}

	return &account, nil
}

// UpdateByID writes the fields present in update and always refreshes updated_at
func (r *accountRepository) UpdateByID(ctx context.Context, id int64, update models.AccountUpdate) error {
	sets := []string{"updated_at = clock_timestamp()"}
	args := []any{id}

	set := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	set("username", update.Username)
	set("email", update.Email)
	set("password", update.Password)

	query := `UPDATE accounts SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if conflict := asUniqueViolation(err, deref(update.Username), deref(update.Email)); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to update account: %w", err)
	}

	return requireAffected(result, id)
}

// DeleteByID permanently removes the account
func (r *accountRepository) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return requireAffected(result, id)
}

func requireAffected(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account %d: %w", id, models.ErrNotFound)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
