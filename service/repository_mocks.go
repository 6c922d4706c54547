package service

import (
	"context"

	"classifica/models"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, userID int64) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) UpsertProfile(ctx context.Context, userID int64, username, firstName string) error {
	args := m.Called(ctx, userID, username, firstName)
	return args.Error(0)
}

func (m *MockAccountRepository) AddPoints(ctx context.Context, userID int64, username, firstName string, delta int64) (*models.Account, error) {
	args := m.Called(ctx, userID, username, firstName, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) ResolveIDByUsername(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) GetLeaderboard(ctx context.Context) ([]*models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockAccountRepository) ResetAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAll(ctx context.Context) ([]*models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

// MockPointsHistoryRepository is a mock implementation of PointsHistoryRepository
type MockPointsHistoryRepository struct {
	mock.Mock
}

func (m *MockPointsHistoryRepository) Record(ctx context.Context, history *models.PointsHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockPointsHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.PointsHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PointsHistory), args.Error(1)
}
