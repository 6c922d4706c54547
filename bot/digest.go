package bot

import (
	"context"

	log "github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// SendLeaderboardDigest posts the current leaderboard to the configured group
// chat. Called on a schedule; a no-op when no group is configured or nobody
// has points yet.
func (b *Bot) SendLeaderboardDigest() {
	if b.config.TargetGroupID == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	accounts, err := b.ledger.Leaderboard(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to fetch leaderboard for digest")
		return
	}
	if len(accounts) == 0 {
		log.Debug("Leaderboard empty, skipping digest")
		return
	}

	chat := &telebot.Chat{ID: b.config.TargetGroupID}
	if _, err := b.tb.Send(chat, b.formatter.Render(accounts)); err != nil {
		log.WithError(err).WithField("chatID", b.config.TargetGroupID).Error("Failed to send leaderboard digest")
		return
	}
	log.WithField("entries", len(accounts)).Info("Leaderboard digest sent")
}
