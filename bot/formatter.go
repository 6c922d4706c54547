package bot

import (
	"fmt"
	"strings"
	"time"

	"classifica/models"
)

// Formatter renders the ranked leaderboard to plain text
type Formatter struct {
	now func() time.Time
}

// NewFormatter creates a formatter using the wall clock
func NewFormatter() *Formatter {
	return &Formatter{now: time.Now}
}

// Render turns rank-ordered accounts into the leaderboard listing. The caller
// guarantees the order; entries are numbered from 1. Per entry the display
// name is @username, else the first name, else the numeric id.
func (f *Formatter) Render(accounts []*models.Account) string {
	if len(accounts) == 0 {
		return msgLeaderboardEmpty
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 Classifica Attuale (%s)\n\n", f.now().Format("02/01/2006 15:04:05"))

	for i, account := range accounts {
		displayName := account.DisplayName()
		if displayName == "" {
			displayName = fmt.Sprintf("ID: %d", account.UserID)
		}
		fmt.Fprintf(&b, "%d. %s - 🪙 %d\n", i+1, displayName, account.Points)
	}
	return b.String()
}
