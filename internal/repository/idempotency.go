package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benx421/account-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// IdempotencyRepository stores responses of processed create requests
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type idempotencyRepository struct {
	db sqlx.ExtContext
}

// NewIdempotencyRepository creates a new IdempotencyRepository
func NewIdempotencyRepository(database sqlx.ExtContext) IdempotencyRepository {
	return &idempotencyRepository{db: database}
}

// Get returns the stored response, or nil when the key has not been seen
func (r *idempotencyRepository) Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	query := `
		SELECT key, request_path, response_status, response_body, created_at
		FROM idempotency_keys
		WHERE key = $1 AND request_path = $2
	`

	var idemKey models.IdempotencyKey
	err := sqlx.GetContext(ctx, r.db, &idemKey, query, key, requestPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}

	return &idemKey, nil
}

// Store records a response; the first stored response for a key wins
func (r *idempotencyRepository) Store(ctx context.Context, idemKey *models.IdempotencyKey) error {
	createdAt := idemKey.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO idempotency_keys (key, request_path, response_status, response_body, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key, request_path) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		idemKey.Key,
		idemKey.RequestPath,
		idemKey.ResponseStatus,
		idemKey.ResponseBody,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}

	return nil
}

// DeleteOlderThan purges keys created before cutoff and returns how many were removed
func (r *idempotencyRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM idempotency_keys WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete idempotency keys: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
