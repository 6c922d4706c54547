package cmd

import (
	"context"
	"fmt"

	"classifica/bot"
	"classifica/config"
	"classifica/database"
	"classifica/events"
	"classifica/repository"
	"classifica/repository/sqlitestore"
	"classifica/service"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting classifica bot...")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	accountRepo, historyRepo, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()
	log.Infof("Storage ready (driver: %s)", cfg.StorageDriver)

	eventBus := events.NewBus()
	ledgerService := service.NewLedgerService(accountRepo, historyRepo, eventBus)

	guard := bot.NewGuard(cfg.AuthorizedAdminIDs)
	formatter := bot.NewFormatter()
	router := bot.NewRouter(ledgerService, guard, formatter)

	tgBot, err := bot.New(bot.Config{
		Token:         cfg.BotToken,
		TargetGroupID: cfg.TargetGroupID,
	}, router, ledgerService, formatter, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	// Leaderboard digest schedule, only when a target group is configured
	var scheduler *cron.Cron
	if cfg.TargetGroupID != 0 {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.DigestCron, tgBot.SendLeaderboardDigest); err != nil {
			return fmt.Errorf("invalid DIGEST_CRON %q: %w", cfg.DigestCron, err)
		}
		scheduler.Start()
		log.Infof("Leaderboard digest scheduled (%s) for group %d", cfg.DigestCron, cfg.TargetGroupID)
	}

	go tgBot.Start()
	log.Infof("Bot is running in %s mode...", cfg.Environment)

	<-ctx.Done()

	log.Info("Shutting down bot...")
	if scheduler != nil {
		scheduler.Stop()
	}
	tgBot.Stop()
	return nil
}

// openStorage builds the ledger repositories for the configured driver
func openStorage(ctx context.Context, cfg *config.Config) (service.AccountRepository, service.PointsHistoryRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		if err := database.MigrateUp(cfg.DatabaseURL); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		db, err := database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return repository.NewAccountRepository(db), repository.NewPointsHistoryRepository(db), db.Close, nil

	case config.DriverSQLite:
		store, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return sqlitestore.NewAccountRepository(store), sqlitestore.NewPointsHistoryRepository(store), func() {}, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
