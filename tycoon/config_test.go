package tycoon

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mektycoon/mekgold/tycoon/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "DEBUG"

[db]
driver = "sqlite"
sqlite_path = "mekgold.db"

[web]
port = 9090
allowed_origins = ["https://mektycoon.example"]

[economy]
collection_cap_hours = 48.0
gold_per_xp = 5.0

[sweeper]
enabled = false
interval_seconds = 30

[archive]
bucket = "ledger"
region = "us-east-1"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "mekgold.db", cfg.DB.SQLitePath)
	assert.Equal(t, "0.0.0.0:9090", cfg.Web.Addr())
	assert.Equal(t, []string{"https://mektycoon.example"}, cfg.Web.AllowedOrigins)

	assert.Equal(t, 48.0, cfg.Economy.CollectionCapHours)
	assert.Equal(t, 5.0, cfg.Economy.GoldPerXP)
	assert.Equal(t, config.CategoryGoldRate, cfg.Economy.RateCategory)
	assert.Equal(t, config.MaxRetries, cfg.Economy.MaxRetries)

	assert.False(t, cfg.Sweeper.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Sweeper.Interval())

	assert.True(t, cfg.Archive.Enabled())
	assert.Equal(t, "settlements", cfg.Archive.Prefix)
	assert.Equal(t, 30*24*time.Hour, cfg.Archive.OlderThan())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "[economy]\ncap = 1\n"))
	assert.Error(t, err)
}
