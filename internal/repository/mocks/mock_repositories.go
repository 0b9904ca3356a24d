// Package mocks provides testify doubles for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/benx421/account-api/internal/models"
	"github.com/benx421/account-api/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of repository.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

var _ repository.AccountRepository = (*MockAccountRepository)(nil)

// NewMockAccountRepository creates a mock and asserts its expectations on test cleanup.
func NewMockAccountRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context) ([]models.Account, error) {
	args := m.Called(ctx)
	accounts, _ := args.Get(0).([]models.Account)
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*models.Account)
	return account, args.Error(1)
}

func (m *MockAccountRepository) UpdateByID(ctx context.Context, id int64, update models.AccountUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIdempotencyRepository is a mock implementation of repository.IdempotencyRepository
type MockIdempotencyRepository struct {
	mock.Mock
}

var _ repository.IdempotencyRepository = (*MockIdempotencyRepository)(nil)

// NewMockIdempotencyRepository creates a mock and asserts its expectations on test cleanup.
func NewMockIdempotencyRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockIdempotencyRepository {
	m := &MockIdempotencyRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockIdempotencyRepository) Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	args := m.Called(ctx, key, requestPath)
	idemKey, _ := args.Get(0).(*models.IdempotencyKey)
	return idemKey, args.Error(1)
}

func (m *MockIdempotencyRepository) Store(ctx context.Context, idemKey *models.IdempotencyKey) error {
	args := m.Called(ctx, idemKey)
	return args.Error(0)
}

func (m *MockIdempotencyRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
