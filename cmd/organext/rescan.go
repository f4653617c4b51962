package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var rescanTimeout time.Duration

var rescanCmd = &cobra.Command{
	Use:   "rescan",
	Short: "Re-derive pending reminders from the database",
	Long: "rescan opens the database directly, runs a single reminder scan\n" +
		"pass over tasks, events, and appointments, and exits. It is meant\n" +
		"to be run from a cron job or systemd timer so reminders stay\n" +
		"scheduled even when the daemon is not running.",
	Run: func(cmd *cobra.Command, args []string) {
		// One-shot entry point: log at info so timer units capture a
		// record of each pass.
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(log)

		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(context.Background(), rescanTimeout)
		defer cancel()

		result, err := a.newScanner().Run(ctx)
		if err != nil {
			// The pass is abandoned but whatever was scheduled before
			// the deadline stays scheduled.
			if errors.Is(err, context.DeadlineExceeded) {
				log.Warn("rescan timed out", "timeout", rescanTimeout)
			} else {
				fatal("rescan failed", err)
			}
		}

		fmt.Printf("scanned %d, scheduled %d, failed %d\n",
			result.Scanned, result.Scheduled, result.Failed)
	},
}

func init() {
	rescanCmd.Flags().DurationVar(&rescanTimeout, "timeout", 2*time.Minute,
		"abort the scan pass after this duration")
	rootCmd.AddCommand(rescanCmd)
}
