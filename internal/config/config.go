// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default values applied when the corresponding variable is unset.
const (
	DefaultNotifyHour     = 9
	DefaultTimezone       = "Europe/Moscow"
	DefaultCurrencySymbol = "₽"
)

// Config holds all configuration for the application. It is constructed
// once in main and passed to every component that needs it.
type Config struct {
	TelegramBotToken string
	DatabaseURL      string
	LogLevel         string
	AdminIDs         []int64
	NotifyHour       int
	Timezone         string
	CurrencySymbol   string
	OTLPEndpoint     string
	OTLPProtocol     string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPProtocol:     os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL"),
	}

	cfg.NotifyHour = DefaultNotifyHour
	if hourStr := os.Getenv("NOTIFY_HOUR"); hourStr != "" {
		if h, err := strconv.Atoi(hourStr); err == nil && h >= 0 && h <= 23 {
			cfg.NotifyHour = h
		}
	}

	cfg.Timezone = DefaultTimezone
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			cfg.Timezone = tz
		}
	}

	cfg.CurrencySymbol = DefaultCurrencySymbol
	if symbol := os.Getenv("CURRENCY_SYMBOL"); symbol != "" {
		cfg.CurrencySymbol = symbol
	}

	adminStr := os.Getenv("ADMIN_IDS")
	if adminStr != "" {
		for idStr := range strings.SplitSeq(adminStr, ",") {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				continue
			}
			cfg.AdminIDs = append(cfg.AdminIDs, id)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.TelegramBotToken == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Location resolves the configured timezone. The value was validated
// during Load, so resolution cannot fail afterwards.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsAdmin checks whether a Telegram user ID belongs to an administrator.
func (c *Config) IsAdmin(userID int64) bool {
	return slices.Contains(c.AdminIDs, userID)
}
