package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "nba_sharp", cfg.Database.DBName)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)

	assert.Equal(t, "https://stats.nba.com/stats", cfg.StatsAPI.BaseURL)
	assert.Equal(t, "PerGame", cfg.StatsAPI.PerMode)
	assert.Equal(t, 30*time.Second, cfg.StatsAPI.Timeout)
	assert.Equal(t, 600*time.Millisecond, cfg.StatsAPI.RequestDelay)

	assert.Equal(t, "America/New_York", cfg.OddsAPI.Timezone)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "0 12 * * *", cfg.Scheduler.CronSpec)
	assert.Equal(t, "America/New_York", cfg.Scheduler.Timezone)

	assert.Equal(t, 36*time.Hour, cfg.Cache.SlateTTL)
	assert.Equal(t, 12*time.Hour, cfg.Cache.ProjectionTTL)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	resetViper(t)
	require.NoError(t, os.Setenv("DATABASE_HOST", "db.internal"))
	require.NoError(t, os.Setenv("ODDS_API_KEY", "secret-key"))
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_HOST")
		os.Unsetenv("ODDS_API_KEY")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "secret-key", cfg.OddsAPI.APIKey)
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	resetViper(t)
	require.NoError(t, os.Setenv("SCHEDULER_TIMEZONE", "Mars/Olympus_Mons"))
	t.Cleanup(func() { os.Unsetenv("SCHEDULER_TIMEZONE") })

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadNormalizesEnvironment(t *testing.T) {
	resetViper(t)
	require.NoError(t, os.Setenv("ENVIRONMENT", "Production"))
	t.Cleanup(func() { os.Unsetenv("ENVIRONMENT") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
}
