// Package mocks provides testify doubles for the service interfaces.
package mocks

import (
	"context"

	"github.com/benx421/account-api/internal/models"
	"github.com/benx421/account-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockAccountManager is a mock implementation of service.AccountManager
type MockAccountManager struct {
	mock.Mock
}

var _ service.AccountManager = (*MockAccountManager)(nil)

// NewMockAccountManager creates a mock and asserts its expectations on test cleanup.
func NewMockAccountManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountManager {
	m := &MockAccountManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountManager) Create(ctx context.Context, input models.NewAccount) (*models.Account, error) {
	args := m.Called(ctx, input)
	account, _ := args.Get(0).(*models.Account)
	return account, args.Error(1)
}

func (m *MockAccountManager) List(ctx context.Context) ([]models.Account, error) {
	args := m.Called(ctx)
	accounts, _ := args.Get(0).([]models.Account)
	return accounts, args.Error(1)
}

func (m *MockAccountManager) Get(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*models.Account)
	return account, args.Error(1)
}

func (m *MockAccountManager) Update(ctx context.Context, id int64, update models.AccountUpdate) (*models.Account, error) {
	args := m.Called(ctx, id, update)
	account, _ := args.Get(0).(*models.Account)
	return account, args.Error(1)
}

func (m *MockAccountManager) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockHealthChecker is a mock implementation of service.HealthChecker
type MockHealthChecker struct {
	mock.Mock
}

var _ service.HealthChecker = (*MockHealthChecker)(nil)

// NewMockHealthChecker creates a mock and asserts its expectations on test cleanup.
func NewMockHealthChecker(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockHealthChecker {
	m := &MockHealthChecker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHealthChecker) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
