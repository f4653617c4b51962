package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ReminderConfig holds settings for the local reminder engine.
type ReminderConfig struct {
	// ScanIntervalMin is how often (in minutes) the background rescan
	// runs in the foreground daemon. Values below 15 are raised to 15.
	ScanIntervalMin int `mapstructure:"scan_interval_min" yaml:"scan_interval_min"`

	// LookaheadHours bounds how far into the future a single rescan
	// pass schedules notifications.
	LookaheadHours int `mapstructure:"lookahead_hours" yaml:"lookahead_hours"`

	// Locale selects the reminder text templates ("en" or "fr").
	Locale string `mapstructure:"locale" yaml:"locale"`
}

// NotifyConfig holds settings for notification delivery.
type NotifyConfig struct {
	// Channel selects the delivery sender: "pushover" or "log".
	Channel string `mapstructure:"channel" yaml:"channel"`
}

// AIConfig holds settings for the AI assistant integration.
type AIConfig struct {
	Model     string `mapstructure:"model" yaml:"model"`
	MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DBPath is the location of the SQLite database file.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	Reminder ReminderConfig `mapstructure:"reminder" yaml:"reminder"`
	Notify   NotifyConfig   `mapstructure:"notify" yaml:"notify"`
	AI       AIConfig       `mapstructure:"ai" yaml:"ai"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/organext/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "organext", "config.yaml")
}

// DefaultDBPath returns the default SQLite database location,
// ~/.local/share/organext/organext.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "organext.db")
	}
	return filepath.Join(home, ".local", "share", "organext", "organext.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DBPath: DefaultDBPath(),
		Reminder: ReminderConfig{
			ScanIntervalMin: 30,
			LookaheadHours:  24,
			Locale:          "en",
		},
		Notify: NotifyConfig{
			Channel: "log",
		},
		AI: AIConfig{
			Model:     "claude-sonnet-4-5-20250929",
			MaxTokens: 4096,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("db_path", DefaultDBPath())
	v.SetDefault("reminder.scan_interval_min", 30)
	v.SetDefault("reminder.lookahead_hours", 24)
	v.SetDefault("reminder.locale", "en")
	v.SetDefault("notify.channel", "log")
	v.SetDefault("ai.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("ai.max_tokens", 4096)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Reminder.ScanIntervalMin < 15 {
		cfg.Reminder.ScanIntervalMin = 15
	}
	if cfg.Reminder.LookaheadHours <= 0 {
		cfg.Reminder.LookaheadHours = 24
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("reminder", cfg.Reminder)
	v.Set("notify", cfg.Notify)
	v.Set("ai", cfg.AI)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
