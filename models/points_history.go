package models

import (
	"time"
)

// TransactionType categorizes a points history entry
type TransactionType string

const (
	// TransactionTypeGrant is an admin-issued /ap grant or removal
	TransactionTypeGrant TransactionType = "grant"
	// TransactionTypeInitial is the opening balance of a lazily created account
	TransactionTypeInitial TransactionType = "initial"
)

// PointsHistory is an audit record of one balance mutation
type PointsHistory struct {
	ID              int64           `db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserID          int64           `db:"user_id" gorm:"column:user_id;index"`
	PointsBefore    int64           `db:"points_before" gorm:"column:points_before"`
	PointsAfter     int64           `db:"points_after" gorm:"column:points_after"`
	ChangeAmount    int64           `db:"change_amount" gorm:"column:change_amount"`
	TransactionType TransactionType `db:"transaction_type" gorm:"column:transaction_type"`
	CreatedAt       time.Time       `db:"created_at" gorm:"column:created_at"`
}

// TableName keeps gorm on the same table the SQL migrations create.
func (PointsHistory) TableName() string {
	return "points_history"
}
