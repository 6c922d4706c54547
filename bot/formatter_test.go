package bot

import (
	"testing"
	"time"

	"classifica/models"

	"github.com/stretchr/testify/assert"
)

func fixedFormatter() *Formatter {
	return &Formatter{now: func() time.Time {
		return time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)
	}}
}

func TestFormatter_Render(t *testing.T) {
	f := fixedFormatter()

	accounts := []*models.Account{
		{UserID: 1, Username: "alice", FirstName: "Alice", Points: 100},
		{UserID: 2, FirstName: "Bob", Points: 50},
		{UserID: 3, Points: 10},
	}

	want := "🏆 Classifica Attuale (15/06/2025 18:30:00)\n\n" +
		"1. @alice - 🪙 100\n" +
		"2. Bob - 🪙 50\n" +
		"3. ID: 3 - 🪙 10\n"
	assert.Equal(t, want, f.Render(accounts))
}

func TestFormatter_RenderEmpty(t *testing.T) {
	f := fixedFormatter()

	assert.Equal(t, msgLeaderboardEmpty, f.Render(nil))
	assert.Equal(t, msgLeaderboardEmpty, f.Render([]*models.Account{}))
}

func TestFormatter_DisplayNamePrecedence(t *testing.T) {
	f := fixedFormatter()

	t.Run("username wins over first name", func(t *testing.T) {
		out := f.Render([]*models.Account{{UserID: 1, Username: "alice", FirstName: "Alice", Points: 5}})
		assert.Contains(t, out, "1. @alice - 🪙 5")
	})

	t.Run("first name when no username", func(t *testing.T) {
		out := f.Render([]*models.Account{{UserID: 1, FirstName: "Alice", Points: 5}})
		assert.Contains(t, out, "1. Alice - 🪙 5")
	})

	t.Run("id when nothing else", func(t *testing.T) {
		out := f.Render([]*models.Account{{UserID: 12345, Points: 5}})
		assert.Contains(t, out, "1. ID: 12345 - 🪙 5")
	})
}
