package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "cabinet.db", cfg.DatabaseURL)
	assert.Equal(t, 12, cfg.JWTExpirationHours)
	assert.Equal(t, "cabinet.ledger", cfg.KafkaTopic)
	assert.False(t, cfg.EventsEnabled())
}

func TestLoad_PostgresNeedsURL(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_KafkaBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.EventsEnabled())
}

func TestLoadRules_EmptyPathUsesDefaults(t *testing.T) {
	table, pins, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, rules.DefaultTable().Version, table.Version)
	assert.Equal(t, "3333", pins["Finance"])
}

func TestLoadRules_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	doc := `
version = "2025.2"
late_fine = 2000

[prices]
"Jersey" = 40000
"Badge" = 3000

[[savings_tiers]]
min = 5000
weeks = 2
pct = "0.05"

[[savings_tiers]]
min = 20000
weeks = 6
pct = "0.15"

[roles]
Finance = "4321"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	table, pins, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, "2025.2", table.Version)
	assert.True(t, decimal.NewFromInt(2000).Equal(table.LateFine))
	assert.True(t, decimal.NewFromInt(40000).Equal(table.Prices["Jersey"]))
	assert.True(t, decimal.NewFromInt(3000).Equal(table.Prices["Badge"]))
	// untouched defaults survive
	assert.True(t, decimal.NewFromInt(10000).Equal(table.Prices["House Fee"]))
	assert.Len(t, table.SavingsTiers, 2)
	assert.Equal(t, "4321", pins["Finance"])
	assert.Equal(t, "1111", pins["President"])
}

func TestLoadRules_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte("late_fines = 10\n"), 0644))

	_, _, err := LoadRules(path)
	assert.Error(t, err)
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, _, err := LoadRules(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
