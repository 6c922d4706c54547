package bot

import (
	"context"

	"classifica/models"

	"github.com/stretchr/testify/mock"
)

// MockLedgerService is a mock implementation of service.LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RefreshProfile(ctx context.Context, userID int64, username, firstName string) error {
	args := m.Called(ctx, userID, username, firstName)
	return args.Error(0)
}

func (m *MockLedgerService) GetAccount(ctx context.Context, userID int64) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockLedgerService) GrantPoints(ctx context.Context, userID int64, username, firstName string, delta int64) (*models.Account, error) {
	args := m.Called(ctx, userID, username, firstName, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockLedgerService) ResolveIDByUsername(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Leaderboard(ctx context.Context) ([]*models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockLedgerService) ResetLeaderboard(ctx context.Context, requestedBy int64) error {
	args := m.Called(ctx, requestedBy)
	return args.Error(0)
}

func (m *MockLedgerService) ExportAccounts(ctx context.Context) ([]*models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}
