package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage driver names accepted in STORAGE_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Telegram configuration
	BotToken      string
	TargetGroupID int64 // optional group chat for the scheduled leaderboard digest

	// Authorization
	AuthorizedAdminIDs []int64 // Telegram IDs allowed to run privileged commands

	// Storage configuration
	StorageDriver string // "postgres" or "sqlite"
	DatabaseURL   string // postgres connection string
	SQLitePath    string // sqlite database file

	// Digest schedule (cron expression), only used when TargetGroupID is set
	DigestCron string

	// Environment
	Environment string // "development" or "production"
}

// Load reads configuration from environment variables. The returned value is
// passed to the components that need it; nothing reads the environment after
// startup.
func Load() (*Config, error) {
	config := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),

		StorageDriver: os.Getenv("STORAGE_DRIVER"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    os.Getenv("SQLITE_PATH"),

		DigestCron: os.Getenv("DIGEST_CRON"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Parse the admin allow-list
	if adminIDs := os.Getenv("AUTHORIZED_ADMIN_IDS"); adminIDs != "" {
		idStrings := strings.Split(adminIDs, ",")
		for _, idStr := range idStrings {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid admin ID %q in AUTHORIZED_ADMIN_IDS: %w", idStr, err)
			}
			config.AuthorizedAdminIDs = append(config.AuthorizedAdminIDs, id)
		}
	}

	// Optional target group for the leaderboard digest
	if groupID := os.Getenv("TARGET_GROUP_ID"); groupID != "" {
		id, err := strconv.ParseInt(groupID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TARGET_GROUP_ID: %w", err)
		}
		config.TargetGroupID = id
	}

	// Defaults
	if config.StorageDriver == "" {
		config.StorageDriver = DriverSQLite
	}
	if config.SQLitePath == "" {
		config.SQLitePath = "classifica.db"
	}
	if config.DigestCron == "" {
		config.DigestCron = "0 20 * * *" // daily at 20:00
	}
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.BotToken == "" {
			return nil, fmt.Errorf("BOT_TOKEN is required")
		}
		if config.StorageDriver == DriverPostgres && config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	}

	switch config.StorageDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", config.StorageDriver)
	}

	return config, nil
}
