package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/winimoid/organext/internal/model"
	"github.com/winimoid/organext/internal/notify"
	"github.com/winimoid/organext/internal/organizer"
	"github.com/winimoid/organext/internal/reminder"
	"github.com/winimoid/organext/internal/store"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "organext",
	Short: "Personal organizer with local reminders",
	Long: "organext keeps tasks, calendar events, and appointments in a local\n" +
		"SQLite database and reminds you before they are due. Reminders are\n" +
		"derived from record state, so the pending set can always be rebuilt\n" +
		"with a rescan.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default ~/.config/organext/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	cobra.OnInitialize(setupLogging)
}

// setupLogging configures the default slog logger for CLI use.
func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

// app bundles the components every entry point builds from config. There
// is no ambient singleton: each process constructs its own facade and
// passes it down.
type app struct {
	cfg           *model.AppConfig
	store         *store.SQLiteStore
	registry      *notify.Registry
	notifications *notify.Store
	templates     reminder.Templates
	service       *organizer.Service
}

// openApp loads the configuration and opens the store and notification
// registry.
func openApp() (*app, error) {
	path := cfgFile
	if path == "" {
		path = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	registry, err := notify.OpenRegistry(notify.DefaultRegistryPath())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("opening notification registry: %w", err)
	}

	notifications := notify.NewStore(registry, slog.Default())
	templates := reminder.TemplatesFor(cfg.Reminder.Locale)
	syncer := reminder.NewSyncer(notifications, templates)

	return &app{
		cfg:           cfg,
		store:         st,
		registry:      registry,
		notifications: notifications,
		templates:     templates,
		service:       organizer.New(st, syncer),
	}, nil
}

// Close releases the app's resources.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("closing store failed", "error", err)
	}
}

// newScanner builds a rescan scanner from the app's configuration.
func (a *app) newScanner() *reminder.Scanner {
	lookahead := time.Duration(a.cfg.Reminder.LookaheadHours) * time.Hour
	return reminder.NewScanner(a.store, a.notifications, a.templates, lookahead, slog.Default())
}

// parseTimeFlag parses a user-supplied timestamp. A bare date (no time of
// day) parses to local midnight, which the reminder policy treats as "due
// that day".
func parseTimeFlag(value string) (time.Time, error) {
	layouts := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (want YYYY-MM-DD or YYYY-MM-DD HH:MM)", value)
}
