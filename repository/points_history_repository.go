package repository

import (
	"context"
	"fmt"

	"classifica/database"
	"classifica/models"
)

// PointsHistoryRepository is the postgres implementation of the audit trail
type PointsHistoryRepository struct {
	q queryable
}

// NewPointsHistoryRepository creates a new points history repository
func NewPointsHistoryRepository(db *database.DB) *PointsHistoryRepository {
	return &PointsHistoryRepository{q: db.Pool}
}

// Record creates a new points history entry
func (r *PointsHistoryRepository) Record(ctx context.Context, history *models.PointsHistory) error {
	query := `
		INSERT INTO points_history (user_id, points_before, points_after, change_amount, transaction_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		history.UserID,
		history.PointsBefore,
		history.PointsAfter,
		history.ChangeAmount,
		history.TransactionType,
	).Scan(&history.ID, &history.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record points history for user %d: %w", history.UserID, err)
	}
	return nil
}

// GetByUser returns history for a specific user, newest first
func (r *PointsHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.PointsHistory, error) {
	query := `
		SELECT id, user_id, points_before, points_after, change_amount, transaction_type, created_at
		FROM points_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []*models.PointsHistory
	for rows.Next() {
		var entry models.PointsHistory
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.PointsBefore,
			&entry.PointsAfter,
			&entry.ChangeAmount,
			&entry.TransactionType,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history entries: %w", err)
	}
	return entries, nil
}
