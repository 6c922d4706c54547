package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AdminIDParsing(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("AUTHORIZED_ADMIN_IDS", "100, 200 ,300")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200, 300}, cfg.AuthorizedAdminIDs)
}

func TestLoad_InvalidAdminID(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("AUTHORIZED_ADMIN_IDS", "100,abc")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("AUTHORIZED_ADMIN_IDS", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("TARGET_GROUP_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "classifica.db", cfg.SQLitePath)
	assert.Empty(t, cfg.AuthorizedAdminIDs)
	assert.Zero(t, cfg.TargetGroupID)
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("STORAGE_DRIVER", "cosmos")

	_, err := Load()
	assert.Error(t, err)
}
