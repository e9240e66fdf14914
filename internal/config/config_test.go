package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.Equal(t, "habitsync.db", cfg.DatabaseURL)
	assert.Zero(t, cfg.ReminderInterval)
	assert.True(t, cfg.Features.SoftDelete)
	assert.True(t, cfg.Features.RecurrenceReset)
	assert.True(t, cfg.Features.TaskLogs)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("REMINDER_INTERVAL_MINUTES", "15")
	t.Setenv("FEATURE_TASK_LOGS", "off")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 15*time.Minute, cfg.ReminderInterval)
	assert.False(t, cfg.Features.TaskLogs)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
}

func TestParseFlag(t *testing.T) {
	assert.True(t, parseFlag("", true))
	assert.False(t, parseFlag("", false))
	assert.False(t, parseFlag("0", true))
	assert.False(t, parseFlag("FALSE", true))
	assert.False(t, parseFlag("no", true))
	assert.True(t, parseFlag("1", false))
	assert.True(t, parseFlag("on", false))
}
