package testutil

import (
	"time"

	"classifica/models"
)

// CreateTestAccount creates a test account with default values
func CreateTestAccount(userID int64, username string) *models.Account {
	now := time.Now()
	return &models.Account{
		UserID:    userID,
		Username:  username,
		Points:    0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestAccountWithPoints creates a test account with a specific balance
func CreateTestAccountWithPoints(userID int64, username string, points int64) *models.Account {
	account := CreateTestAccount(userID, username)
	account.Points = points
	return account
}

// CreateTestHistory creates a test points history entry
func CreateTestHistory(userID int64, delta int64) *models.PointsHistory {
	return &models.PointsHistory{
		UserID:          userID,
		PointsBefore:    0,
		PointsAfter:     delta,
		ChangeAmount:    delta,
		TransactionType: models.TransactionTypeGrant,
		CreatedAt:       time.Now(),
	}
}
