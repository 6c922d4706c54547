package service

import (
	"context"

	"classifica/models"
)

// AccountRepository defines the storage contract for the points ledger.
// Implementations must make AddPoints and UpsertProfile atomic per account:
// the increment happens in a single storage statement, never as a
// read-modify-write in the caller.
type AccountRepository interface {
	// GetByID retrieves an account by Telegram user ID, nil when absent
	GetByID(ctx context.Context, userID int64) (*models.Account, error)

	// UpsertProfile creates the account with zero points if absent, otherwise
	// updates username/first name when they changed. Never touches points.
	UpsertProfile(ctx context.Context, userID int64, username, firstName string) error

	// AddPoints atomically adds delta to the account's balance, creating the
	// account with points=delta when absent. Username and first name are only
	// rewritten when non-empty values are supplied. Returns the post-mutation
	// account.
	AddPoints(ctx context.Context, userID int64, username, firstName string, delta int64) (*models.Account, error)

	// ResolveIDByUsername resolves a username (case-insensitive, leading @
	// ignored) to a user ID. Returns ErrAccountNotFound when no account
	// carries that username.
	ResolveIDByUsername(ctx context.Context, username string) (int64, error)

	// GetLeaderboard returns all accounts with points > 0, ordered by points
	// descending with a deterministic tie-break
	GetLeaderboard(ctx context.Context) ([]*models.Account, error)

	// ResetAll removes every account; the leaderboard is empty afterwards
	ResetAll(ctx context.Context) error

	// GetAll returns every known account in a stable order
	GetAll(ctx context.Context) ([]*models.Account, error)
}

// PointsHistoryRepository defines the interface for the balance audit trail
type PointsHistoryRepository interface {
	// Record creates a new points history entry
	Record(ctx context.Context, history *models.PointsHistory) error

	// GetByUser returns history for a specific user, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.PointsHistory, error)
}

// LedgerService is the business layer consumed by the command router
type LedgerService interface {
	// RefreshProfile records the sender's current username and first name,
	// creating the account lazily on first contact
	RefreshProfile(ctx context.Context, userID int64, username, firstName string) error

	// GetAccount returns the account for a user ID, nil when absent
	GetAccount(ctx context.Context, userID int64) (*models.Account, error)

	// GrantPoints applies an admin grant (delta may be negative), records the
	// mutation in the history and emits a balance change event
	GrantPoints(ctx context.Context, userID int64, username, firstName string, delta int64) (*models.Account, error)

	// ResolveIDByUsername resolves a username to a user ID
	ResolveIDByUsername(ctx context.Context, username string) (int64, error)

	// Leaderboard returns the ranked positive-balance accounts
	Leaderboard(ctx context.Context) ([]*models.Account, error)

	// ResetLeaderboard wipes every account
	ResetLeaderboard(ctx context.Context, requestedBy int64) error

	// ExportAccounts returns every known account
	ExportAccounts(ctx context.Context) ([]*models.Account, error)
}
