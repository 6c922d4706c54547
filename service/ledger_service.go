package service

import (
	"context"
	"fmt"

	"classifica/events"
	"classifica/models"

	log "github.com/sirupsen/logrus"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	accountRepo AccountRepository
	historyRepo PointsHistoryRepository
	eventBus    *events.Bus
}

// NewLedgerService creates a new ledger service
func NewLedgerService(accountRepo AccountRepository, historyRepo PointsHistoryRepository, eventBus *events.Bus) LedgerService {
	return &ledgerService{
		accountRepo: accountRepo,
		historyRepo: historyRepo,
		eventBus:    eventBus,
	}
}

// RefreshProfile keeps the directory fresh for any observed sender. It is
// idempotent: the repository skips the write when nothing changed.
func (s *ledgerService) RefreshProfile(ctx context.Context, userID int64, username, firstName string) error {
	if err := s.accountRepo.UpsertProfile(ctx, userID, username, firstName); err != nil {
		return fmt.Errorf("failed to refresh profile for user %d: %w", userID, err)
	}
	return nil
}

func (s *ledgerService) GetAccount(ctx context.Context, userID int64) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", userID, err)
	}
	return account, nil
}

// GrantPoints applies an additive delta to the account's balance. The
// increment itself is a single atomic repository operation; the history row
// and event are recorded afterwards from the returned snapshot.
func (s *ledgerService) GrantPoints(ctx context.Context, userID int64, username, firstName string, delta int64) (*models.Account, error) {
	account, err := s.accountRepo.AddPoints(ctx, userID, username, firstName, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to add points for user %d: %w", userID, err)
	}

	history := &models.PointsHistory{
		UserID:          userID,
		PointsBefore:    account.Points - delta,
		PointsAfter:     account.Points,
		ChangeAmount:    delta,
		TransactionType: models.TransactionTypeGrant,
	}
	if err := s.historyRepo.Record(ctx, history); err != nil {
		return nil, fmt.Errorf("failed to record points history for user %d: %w", userID, err)
	}

	s.eventBus.Emit(ctx, events.BalanceChangeEvent{
		UserID:          userID,
		OldPoints:       account.Points - delta,
		NewPoints:       account.Points,
		ChangeAmount:    delta,
		TransactionType: models.TransactionTypeGrant,
	})

	log.WithFields(log.Fields{
		"userID": userID,
		"delta":  delta,
		"points": account.Points,
	}).Info("Points updated")

	return account, nil
}

func (s *ledgerService) ResolveIDByUsername(ctx context.Context, username string) (int64, error) {
	return s.accountRepo.ResolveIDByUsername(ctx, username)
}

func (s *ledgerService) Leaderboard(ctx context.Context) ([]*models.Account, error) {
	accounts, err := s.accountRepo.GetLeaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return accounts, nil
}

func (s *ledgerService) ResetLeaderboard(ctx context.Context, requestedBy int64) error {
	if err := s.accountRepo.ResetAll(ctx); err != nil {
		return fmt.Errorf("failed to reset leaderboard: %w", err)
	}

	s.eventBus.Emit(ctx, events.LeaderboardResetEvent{RequestedBy: requestedBy})

	log.WithField("requestedBy", requestedBy).Info("Leaderboard reset")
	return nil
}

func (s *ledgerService) ExportAccounts(ctx context.Context) ([]*models.Account, error) {
	accounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export accounts: %w", err)
	}
	return accounts, nil
}
