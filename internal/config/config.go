package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Features gates the optional schema extensions layered on top of the sync
// core. All default to on; disabling one removes its behavior without
// touching reconciliation.
type Features struct {
	SoftDelete      bool // DELETE /tasks marks rows instead of removing them
	RecurrenceReset bool // recurring completions expire lazily on read
	TaskLogs        bool // /task-logs endpoints are registered
}

// Config keeps runtime settings for the server.
type Config struct {
	HTTPPort         string
	DatabaseURL      string
	TelegramToken    string
	ReminderInterval time.Duration
	DailyDigestTime  string // "HH:MM", empty disables the daily digest
	Features         Features
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:         strings.TrimSpace(os.Getenv("HTTP_PORT")),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TelegramToken:    strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		ReminderInterval: parseMinutes(strings.TrimSpace(os.Getenv("REMINDER_INTERVAL_MINUTES"))),
		DailyDigestTime:  strings.TrimSpace(os.Getenv("REMINDER_DAILY_TIME")),
		Features: Features{
			SoftDelete:      parseFlag(os.Getenv("FEATURE_SOFT_DELETE"), true),
			RecurrenceReset: parseFlag(os.Getenv("FEATURE_RECURRENCE_RESET"), true),
			TaskLogs:        parseFlag(os.Getenv("FEATURE_TASK_LOGS"), true),
		},
	}

	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "3000"
	}
	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		return cfg, fmt.Errorf("HTTP_PORT must be numeric, got %q", cfg.HTTPPort)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "habitsync.db"
	}

	return cfg, nil
}

func parseMinutes(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}

func parseFlag(raw string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return def
	case "0", "false", "off", "no":
		return false
	default:
		return true
	}
}
