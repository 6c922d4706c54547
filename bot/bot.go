package bot

import (
	"context"
	"fmt"
	"time"

	"classifica/events"
	"classifica/service"

	log "github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// handleTimeout bounds the work done for a single update so the dispatcher
// can always answer (or fail) within a fixed budget.
const handleTimeout = 10 * time.Second

// Config holds bot configuration
type Config struct {
	Token         string
	TargetGroupID int64 // optional group chat for the leaderboard digest
}

// Bot connects the command router to Telegram via long polling
type Bot struct {
	config    Config
	tb        *telebot.Bot
	router    *Router
	ledger    service.LedgerService
	formatter *Formatter
}

// New creates the Telegram bot and registers its single text handler. Every
// text update, commands included, flows through the router.
func New(config Config, router *Router, ledger service.LedgerService, formatter *Formatter, eventBus *events.Bus) (*Bot, error) {
	pref := telebot.Settings{
		Token:  config.Token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	}

	tb, err := telebot.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("error creating telegram bot: %w", err)
	}

	bot := &Bot{
		config:    config,
		tb:        tb,
		router:    router,
		ledger:    ledger,
		formatter: formatter,
	}

	tb.Handle(telebot.OnText, bot.onText)

	eventBus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.BalanceChangeEvent); ok {
			log.WithFields(log.Fields{
				"userID":    e.UserID,
				"oldPoints": e.OldPoints,
				"newPoints": e.NewPoints,
			}).Debug("Balance changed")
		}
	})

	return bot, nil
}

// onText adapts one telebot update for the router and sends back its reply
func (b *Bot) onText(c telebot.Context) error {
	sender := c.Sender()
	if sender == nil {
		log.Warn("Received message with no sender, ignoring")
		return nil
	}

	msg := Message{
		SenderID:  sender.ID,
		Username:  sender.Username,
		FirstName: sender.FirstName,
		Private:   c.Chat().Type == telebot.ChatPrivate,
		Text:      c.Text(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	reply, ok := b.router.Handle(ctx, msg)
	if !ok {
		return nil
	}
	return c.Send(reply)
}

// Start begins long polling; it blocks until Stop is called
func (b *Bot) Start() {
	b.tb.Start()
}

// Stop halts the poller
func (b *Bot) Stop() {
	b.tb.Stop()
}
