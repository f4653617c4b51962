package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winimoid/organext/internal/model"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := model.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Reminder.ScanIntervalMin)
	assert.Equal(t, 24, cfg.Reminder.LookaheadHours)
	assert.Equal(t, "en", cfg.Reminder.Locale)
	assert.Equal(t, "log", cfg.Notify.Channel)
	assert.NotEmpty(t, cfg.DBPath)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reminder:\n  locale: fr\n"), 0o644))

	cfg, err := model.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.Reminder.Locale)
	assert.Equal(t, 24, cfg.Reminder.LookaheadHours, "unset keys fall back to defaults")
}

func TestLoadConfigRaisesLowScanInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reminder:\n  scan_interval_min: 5\n"), 0o644))

	cfg, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Reminder.ScanIntervalMin)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := model.LoadConfig(path)
	require.NoError(t, err)
	cfg.Reminder.Locale = "fr"
	cfg.Notify.Channel = "pushover"

	require.NoError(t, model.SaveConfig(path, cfg))

	loaded, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "fr", loaded.Reminder.Locale)
	assert.Equal(t, "pushover", loaded.Notify.Channel)
}
