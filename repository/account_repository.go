package repository

import (
	"context"
	"errors"
	"fmt"

	"classifica/database"
	"classifica/models"
	"classifica/service"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryable abstracts over the pool and a transaction
type queryable interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AccountRepository is the postgres implementation of the points ledger
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

const accountColumns = `user_id, username, first_name, points, created_at, updated_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.UserID,
		&account.Username,
		&account.FirstName,
		&account.Points,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByID retrieves an account by Telegram user ID
func (r *AccountRepository) GetByID(ctx context.Context, userID int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", userID, err)
	}
	return account, nil
}

// UpsertProfile creates the account with zero points if absent, otherwise
// refreshes username/first name. The WHERE clause skips the write when
// nothing changed; points is never part of the update.
func (r *AccountRepository) UpsertProfile(ctx context.Context, userID int64, username, firstName string) error {
	query := `
		INSERT INTO accounts (user_id, username, first_name, points)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			updated_at = NOW()
		WHERE accounts.username IS DISTINCT FROM EXCLUDED.username
		   OR accounts.first_name IS DISTINCT FROM EXCLUDED.first_name
	`

	_, err := r.q.Exec(ctx, query, userID, models.NormalizeUsername(username), firstName)
	if err != nil {
		return fmt.Errorf("failed to upsert profile for user %d: %w", userID, err)
	}
	return nil
}

// AddPoints applies an additive delta in a single statement so concurrent
// grants for the same account cannot lose updates. The account is created
// with points=delta when absent; username/first name are only rewritten when
// non-empty values are supplied.
func (r *AccountRepository) AddPoints(ctx context.Context, userID int64, username, firstName string, delta int64) (*models.Account, error) {
	query := `
		INSERT INTO accounts (user_id, username, first_name, points)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			points = accounts.points + EXCLUDED.points,
			username = CASE WHEN EXCLUDED.username <> '' THEN EXCLUDED.username ELSE accounts.username END,
			first_name = CASE WHEN EXCLUDED.first_name <> '' THEN EXCLUDED.first_name ELSE accounts.first_name END,
			updated_at = NOW()
		RETURNING ` + accountColumns

	account, err := scanAccount(r.q.QueryRow(ctx, query, userID, models.NormalizeUsername(username), firstName, delta))
	if err != nil {
		return nil, fmt.Errorf("failed to add points for user %d: %w", userID, err)
	}
	return account, nil
}

// ResolveIDByUsername resolves a username to a user ID. When two accounts
// ever share a username the oldest one wins, deterministically.
func (r *AccountRepository) ResolveIDByUsername(ctx context.Context, username string) (int64, error) {
	normalized := models.NormalizeUsername(username)
	if normalized == "" {
		return 0, service.ErrAccountNotFound
	}

	query := `
		SELECT user_id FROM accounts
		WHERE username = $1
		ORDER BY created_at ASC, user_id ASC
		LIMIT 1
	`

	var userID int64
	err := r.q.QueryRow(ctx, query, normalized).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, service.ErrAccountNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve username %q: %w", normalized, err)
	}
	return userID, nil
}

// GetLeaderboard returns all accounts with points > 0, ranked
func (r *AccountRepository) GetLeaderboard(ctx context.Context) ([]*models.Account, error) {
	query := `
		SELECT ` + accountColumns + ` FROM accounts
		WHERE points > 0
		ORDER BY points DESC, created_at ASC, user_id ASC
	`
	return r.queryAccounts(ctx, query)
}

// ResetAll deletes every account row
func (r *AccountRepository) ResetAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("failed to reset accounts: %w", err)
	}
	return nil
}

// GetAll returns every known account in creation order
func (r *AccountRepository) GetAll(ctx context.Context) ([]*models.Account, error) {
	query := `
		SELECT ` + accountColumns + ` FROM accounts
		ORDER BY created_at ASC, user_id ASC
	`
	return r.queryAccounts(ctx, query)
}

func (r *AccountRepository) queryAccounts(ctx context.Context, query string) ([]*models.Account, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}
