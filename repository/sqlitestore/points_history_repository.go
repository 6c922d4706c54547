package sqlitestore

import (
	"context"
	"fmt"

	"classifica/models"
)

// PointsHistoryRepository is the sqlite implementation of the audit trail
type PointsHistoryRepository struct {
	store *Store
}

// NewPointsHistoryRepository creates a new points history repository
func NewPointsHistoryRepository(store *Store) *PointsHistoryRepository {
	return &PointsHistoryRepository{store: store}
}

// Record creates a new points history entry
func (r *PointsHistoryRepository) Record(ctx context.Context, history *models.PointsHistory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.db.WithContext(ctx).Create(history).Error; err != nil {
		return fmt.Errorf("failed to record points history for user %d: %w", history.UserID, err)
	}
	return nil
}

// GetByUser returns history for a specific user, newest first
func (r *PointsHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.PointsHistory, error) {
	var entries []*models.PointsHistory
	err := r.store.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get history for user %d: %w", userID, err)
	}
	return entries, nil
}
