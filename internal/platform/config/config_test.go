package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeliciasWera/tienda_ledger_app/internal/platform/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "delicias_de_la_wera.xlsx", cfg.DataFile)
	assert.Equal(t, "backups", cfg.BackupDir)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "120-M", cfg.RateLimit)
	assert.False(t, cfg.IsProduction)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DATA_FILE", "tienda.xlsx")
	t.Setenv("PORT", "9090")
	t.Setenv("IS_PRODUCTION", "true")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "tienda.xlsx", cfg.DataFile)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction)
}
