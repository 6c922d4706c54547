package sqlitestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"classifica/models"
	"classifica/service"

	"gorm.io/gorm"
)

// AccountRepository is the sqlite implementation of the points ledger
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new account repository over the store
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// GetByID retrieves an account by Telegram user ID
func (r *AccountRepository) GetByID(ctx context.Context, userID int64) (*models.Account, error) {
	var account models.Account
	err := r.store.db.WithContext(ctx).Take(&account, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", userID, err)
	}
	return &account, nil
}

// UpsertProfile creates the account with zero points if absent, otherwise
// refreshes username/first name when they changed. Points is never part of
// the update.
func (r *AccountRepository) UpsertProfile(ctx context.Context, userID int64, username, firstName string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	query := `
		INSERT INTO accounts (user_id, username, first_name, points, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			updated_at = excluded.updated_at
		WHERE accounts.username IS NOT excluded.username
		   OR accounts.first_name IS NOT excluded.first_name
	`
	err := r.store.db.WithContext(ctx).
		Exec(query, userID, models.NormalizeUsername(username), firstName, now, now).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile for user %d: %w", userID, err)
	}
	return nil
}

// AddPoints applies an additive delta in a single upsert statement; the store
// mutex serializes it against other writers.
func (r *AccountRepository) AddPoints(ctx context.Context, userID int64, username, firstName string, delta int64) (*models.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	query := `
		INSERT INTO accounts (user_id, username, first_name, points, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			points = accounts.points + excluded.points,
			username = CASE WHEN excluded.username <> '' THEN excluded.username ELSE accounts.username END,
			first_name = CASE WHEN excluded.first_name <> '' THEN excluded.first_name ELSE accounts.first_name END,
			updated_at = excluded.updated_at
	`
	err := r.store.db.WithContext(ctx).
		Exec(query, userID, models.NormalizeUsername(username), firstName, delta, now, now).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add points for user %d: %w", userID, err)
	}

	var account models.Account
	if err := r.store.db.WithContext(ctx).Take(&account, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to read back account %d: %w", userID, err)
	}
	return &account, nil
}

// ResolveIDByUsername resolves a username to a user ID, oldest match first
func (r *AccountRepository) ResolveIDByUsername(ctx context.Context, username string) (int64, error) {
	normalized := models.NormalizeUsername(username)
	if normalized == "" {
		return 0, service.ErrAccountNotFound
	}

	var account models.Account
	err := r.store.db.WithContext(ctx).
		Where("username = ?", normalized).
		Order("created_at ASC, user_id ASC").
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, service.ErrAccountNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve username %q: %w", normalized, err)
	}
	return account.UserID, nil
}

// GetLeaderboard returns all accounts with points > 0, ranked
func (r *AccountRepository) GetLeaderboard(ctx context.Context) ([]*models.Account, error) {
	var accounts []*models.Account
	err := r.store.db.WithContext(ctx).
		Where("points > 0").
		Order("points DESC, created_at ASC, user_id ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return accounts, nil
}

// ResetAll deletes every account row
func (r *AccountRepository) ResetAll(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.db.WithContext(ctx).Exec(`DELETE FROM accounts`).Error; err != nil {
		return fmt.Errorf("failed to reset accounts: %w", err)
	}
	return nil
}

// GetAll returns every known account in creation order
func (r *AccountRepository) GetAll(ctx context.Context) ([]*models.Account, error) {
	var accounts []*models.Account
	err := r.store.db.WithContext(ctx).
		Order("created_at ASC, user_id ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all accounts: %w", err)
	}
	return accounts, nil
}
