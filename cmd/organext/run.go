package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/winimoid/organext/internal/credential"
	"github.com/winimoid/organext/internal/notify"
	"github.com/winimoid/organext/internal/reminder"
)

var runJSONLogs bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reminder daemon in the foreground",
	Long: "run starts the notification dispatcher and the periodic reminder\n" +
		"rescan, and blocks until interrupted. This is the process that\n" +
		"actually delivers reminders; the other commands only schedule them.",
	Run: func(cmd *cobra.Command, args []string) {
		// The daemon logs everything it does; the quiet CLI default
		// does not apply here.
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		var handler slog.Handler
		if runJSONLogs {
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		} else {
			handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		}
		log := slog.New(handler)
		slog.SetDefault(log)

		a, err := openApp()
		if err != nil {
			fatal("starting daemon", err)
		}
		defer a.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		dispatcher := notify.NewDispatcher(a.registry, buildSender(a, log), log)
		go dispatcher.Run(ctx)

		interval := time.Duration(a.cfg.Reminder.ScanIntervalMin) * time.Minute
		runner := reminder.NewRunner(a.newScanner(), interval, log)
		runner.Start()

		log.Info("organext daemon started",
			"db", a.cfg.DBPath,
			"scan_interval", interval,
			"channel", a.cfg.Notify.Channel,
		)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Info("shutting down", "signal", sig.String())

		runner.Stop()
		cancel()
	},
}

// buildSender picks the delivery channel from config. Missing push
// credentials degrade to the log sender rather than failing startup.
func buildSender(a *app, log *slog.Logger) notify.Sender {
	if a.cfg.Notify.Channel == "pushover" {
		token, err := credential.Get(credential.KeyPushoverToken)
		if err != nil {
			log.Warn("pushover token unavailable, falling back to log delivery", "error", err)
			return &notify.LogSender{Log: log}
		}
		user, err := credential.Get(credential.KeyPushoverUser)
		if err != nil {
			log.Warn("pushover user unavailable, falling back to log delivery", "error", err)
			return &notify.LogSender{Log: log}
		}
		return notify.NewPushoverSender(token, user)
	}
	return &notify.LogSender{Log: log}
}

func init() {
	runCmd.Flags().BoolVar(&runJSONLogs, "json-logs", false, "emit logs as JSON")
	rootCmd.AddCommand(runCmd)
}
