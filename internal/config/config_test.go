package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads all config from env", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "test-token-123", cfg.TelegramBotToken)
		require.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultNotifyHour, cfg.NotifyHour)
		require.Equal(t, DefaultTimezone, cfg.Timezone)
		require.Equal(t, DefaultCurrencySymbol, cfg.CurrencySymbol)
	})

	t.Run("parses admin IDs", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("ADMIN_IDS", "123, 456 ,789")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, []int64{123, 456, 789}, cfg.AdminIDs)
		require.True(t, cfg.IsAdmin(456))
		require.False(t, cfg.IsAdmin(999))
	})

	t.Run("skips invalid admin IDs", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("ADMIN_IDS", "123,not-a-number,456,")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, []int64{123, 456}, cfg.AdminIDs)
	})

	t.Run("rejects notify hour out of range", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("NOTIFY_HOUR", "25")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultNotifyHour, cfg.NotifyHour)
	})

	t.Run("accepts valid notify hour and timezone", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("NOTIFY_HOUR", "20")
		t.Setenv("TIMEZONE", "Asia/Singapore")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, 20, cfg.NotifyHour)
		require.Equal(t, "Asia/Singapore", cfg.Timezone)
		require.Equal(t, "Asia/Singapore", cfg.Location().String())
	})

	t.Run("keeps default timezone when value is bogus", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("TIMEZONE", "Not/AZone")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultTimezone, cfg.Timezone)
	})

	t.Run("custom currency symbol", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("CURRENCY_SYMBOL", "$")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "$", cfg.CurrencySymbol)
	})

	t.Run("fails without required values", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "")
		t.Setenv("DATABASE_URL", "")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN is required")
		require.Contains(t, err.Error(), "DATABASE_URL is required")
	})
}
