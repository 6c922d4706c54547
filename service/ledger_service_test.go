package service

import (
	"context"
	"errors"
	"testing"

	"classifica/events"
	"classifica/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestService() (LedgerService, *MockAccountRepository, *MockPointsHistoryRepository) {
	accountRepo := new(MockAccountRepository)
	historyRepo := new(MockPointsHistoryRepository)
	return NewLedgerService(accountRepo, historyRepo, events.NewBus()), accountRepo, historyRepo
}

func TestLedgerService_GrantPoints_RecordsHistory(t *testing.T) {
	ctx := context.Background()
	svc, accountRepo, historyRepo := newTestService()

	updated := &models.Account{UserID: 42, Username: "bob", Points: 50}
	accountRepo.On("AddPoints", ctx, int64(42), "bob", "", int64(50)).Return(updated, nil)
	historyRepo.On("Record", ctx, mock.MatchedBy(func(h *models.PointsHistory) bool {
		return h.UserID == 42 &&
			h.PointsBefore == 0 &&
			h.PointsAfter == 50 &&
			h.ChangeAmount == 50 &&
			h.TransactionType == models.TransactionTypeGrant
	})).Return(nil)

	account, err := svc.GrantPoints(ctx, 42, "bob", "", 50)

	assert.NoError(t, err)
	assert.Equal(t, updated, account)
	accountRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
}

func TestLedgerService_GrantPoints_NegativeDelta(t *testing.T) {
	ctx := context.Background()
	svc, accountRepo, historyRepo := newTestService()

	updated := &models.Account{UserID: 7, Username: "bob", Points: 10}
	accountRepo.On("AddPoints", ctx, int64(7), "", "", int64(-20)).Return(updated, nil)
	historyRepo.On("Record", ctx, mock.MatchedBy(func(h *models.PointsHistory) bool {
		return h.PointsBefore == 30 && h.PointsAfter == 10 && h.ChangeAmount == -20
	})).Return(nil)

	account, err := svc.GrantPoints(ctx, 7, "", "", -20)

	assert.NoError(t, err)
	assert.Equal(t, int64(10), account.Points)
	historyRepo.AssertExpectations(t)
}

func TestLedgerService_GrantPoints_RepositoryError(t *testing.T) {
	ctx := context.Background()
	svc, accountRepo, historyRepo := newTestService()

	accountRepo.On("AddPoints", ctx, int64(42), "", "", int64(5)).Return(nil, errors.New("connection refused"))

	account, err := svc.GrantPoints(ctx, 42, "", "", 5)

	assert.Error(t, err)
	assert.Nil(t, account)
	assert.Contains(t, err.Error(), "failed to add points")
	historyRepo.AssertNotCalled(t, "Record")
}

func TestLedgerService_RefreshProfile(t *testing.T) {
	ctx := context.Background()
	svc, accountRepo, _ := newTestService()

	accountRepo.On("UpsertProfile", ctx, int64(42), "bob", "Bob").Return(nil)

	err := svc.RefreshProfile(ctx, 42, "bob", "Bob")

	assert.NoError(t, err)
	accountRepo.AssertExpectations(t)
}

func TestLedgerService_GetAccount(t *testing.T) {
	ctx := context.Background()
	svc, accountRepo, _ := newTestService()

	existing := &models.Account{UserID: 42, Username: "bob", Points: 30}
	accountRepo.On("GetByID", ctx, int64(42)).Return(existing, nil)
	accountRepo.On("GetByID", ctx, int64(7)).Return(nil, nil)

	account, err := svc.GetAccount(ctx, 42)
	assert.NoError(t, err)
	assert.Equal(t, existing, account)

	account, err = svc.GetAccount(ctx, 7)
	assert.NoError(t, err)
	assert.Nil(t, account)
}

func TestLedgerService_ResolveIDByUsername_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, accountRepo, _ := newTestService()

	accountRepo.On("ResolveIDByUsername", ctx, "ghost").Return(int64(0), ErrAccountNotFound)

	_, err := svc.ResolveIDByUsername(ctx, "ghost")

	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLedgerService_ResetLeaderboard(t *testing.T) {
	ctx := context.Background()
	svc, accountRepo, _ := newTestService()

	accountRepo.On("ResetAll", ctx).Return(nil)

	err := svc.ResetLeaderboard(ctx, 100)

	assert.NoError(t, err)
	accountRepo.AssertExpectations(t)
}

func TestLedgerService_Leaderboard(t *testing.T) {
	ctx := context.Background()
	svc, accountRepo, _ := newTestService()

	ranked := []*models.Account{
		{UserID: 1, Points: 100},
		{UserID: 2, Points: 50},
	}
	accountRepo.On("GetLeaderboard", ctx).Return(ranked, nil)

	accounts, err := svc.Leaderboard(ctx)

	assert.NoError(t, err)
	assert.Equal(t, ranked, accounts)
}
