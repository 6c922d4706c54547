package models

import (
	"strings"
	"time"
)

// NormalizeUsername lower-cases a username and strips the leading @, the form
// usernames are stored and compared in.
func NormalizeUsername(username string) string {
	return strings.TrimPrefix(strings.ToLower(username), "@")
}

// Account represents a Telegram user known to the bot, with their coin balance.
// Username is stored lower-cased with no leading @; it may be empty, and so may
// FirstName. Points is mutated only through additive deltas.
type Account struct {
	UserID    int64     `db:"user_id" gorm:"column:user_id;primaryKey" json:"userId"`
	Username  string    `db:"username" gorm:"column:username;index" json:"username"`
	FirstName string    `db:"first_name" gorm:"column:first_name" json:"firstName"`
	Points    int64     `db:"points" gorm:"column:points" json:"points"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" gorm:"column:updated_at" json:"-"`
}

// TableName keeps gorm on the same table the SQL migrations create.
func (Account) TableName() string {
	return "accounts"
}

// DisplayName returns the name shown in replies and leaderboard entries:
// @username when set, else the first name, else the numeric id.
func (a *Account) DisplayName() string {
	if a.Username != "" {
		return "@" + a.Username
	}
	if a.FirstName != "" {
		return a.FirstName
	}
	return ""
}
