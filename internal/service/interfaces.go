package service

import (
	"context"

	"github.com/benx421/account-api/internal/models"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// AccountManager handles account CRUD operations
type AccountManager interface {
	Create(ctx context.Context, input models.NewAccount) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	Get(ctx context.Context, id int64) (*models.Account, error)
	Update(ctx context.Context, id int64, update models.AccountUpdate) (*models.Account, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Ensure concrete types implement interfaces
var _ AccountManager = (*AccountService)(nil)
