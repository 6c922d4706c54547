// Package sqlitestore is the sqlite-backed ledger, for single-host
// deployments that don't want to run postgres.
package sqlitestore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"classifica/models"

	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedFile is the Cosmos-export JSON the original deployment migrated from.
// When present and the accounts table is empty, its rows are imported on open.
const SeedFile = "users_backup.json"

// Store owns the gorm handle and the writer lock shared by the repositories.
// sqlite has a single writer; serializing writes up front avoids busy errors
// under concurrent command dispatch.
type Store struct {
	db *gorm.DB
	mu sync.Mutex
}

// Open opens (or creates) the sqlite database, migrates the schema and seeds
// it from SeedFile if this is a fresh database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}

	if err := db.AutoMigrate(&models.Account{}, &models.PointsHistory{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}

	store := &Store{db: db}
	if err := store.seedFromBackup(); err != nil {
		return nil, err
	}
	return store, nil
}

// seedRecord mirrors the field names of the Cosmos export format
type seedRecord struct {
	UserID    int64   `json:"userId"`
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	Points    int64   `json:"points"`
}

func (s *Store) seedFromBackup() error {
	var count int64
	if err := s.db.Model(&models.Account{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	data, err := os.ReadFile(SeedFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var records []seedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.WithError(err).Warnf("Seed file %s is malformed, starting empty", SeedFile)
		return nil
	}

	accounts := make([]models.Account, 0, len(records))
	for _, rec := range records {
		account := models.Account{
			UserID: rec.UserID,
			Points: rec.Points,
		}
		if rec.Username != nil {
			account.Username = models.NormalizeUsername(*rec.Username)
		}
		if rec.FirstName != nil {
			account.FirstName = *rec.FirstName
		}
		accounts = append(accounts, account)
	}
	if len(accounts) == 0 {
		return nil
	}

	if err := s.db.Create(&accounts).Error; err != nil {
		return fmt.Errorf("failed to import seed accounts: %w", err)
	}
	log.Infof("Imported %d accounts from %s", len(accounts), SeedFile)
	return nil
}
