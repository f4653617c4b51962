package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/winimoid/organext/internal/model"
	"github.com/winimoid/organext/internal/theme"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage calendar events",
}

var (
	eventAddStart    string
	eventAddEnd      string
	eventAddLocation string
	eventAddDesc     string
)

var eventAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new event",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		start, err := parseTimeFlag(eventAddStart)
		if err != nil {
			fatal("parsing --start", err)
		}
		end := start.Add(time.Hour)
		if eventAddEnd != "" {
			end, err = parseTimeFlag(eventAddEnd)
			if err != nil {
				fatal("parsing --end", err)
			}
		}

		event := model.Event{
			Title:       args[0],
			Description: eventAddDesc,
			StartDate:   start,
			EndDate:     end,
			Location:    eventAddLocation,
		}

		created, err := a.service.CreateEvent(context.Background(), event)
		if err != nil {
			fatal("creating event", err)
		}

		fmt.Println(theme.OKStyle.Render("event created"))
		printEvent(created, time.Now())
	},
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		events, err := a.store.GetEvents(context.Background())
		if err != nil {
			fatal("listing events", err)
		}

		if len(events) == 0 {
			fmt.Println(theme.MetaStyle.Render("no events"))
			return
		}

		fmt.Println(theme.HeaderStyle.Render("Events"))
		now := time.Now()
		for _, e := range events {
			printEvent(e, now)
		}
	},
}

var eventRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		if err := a.service.DeleteEvent(context.Background(), args[0]); err != nil {
			fatal("deleting event", err)
		}
		fmt.Println(theme.OKStyle.Render("event deleted"))
	},
}

func printEvent(e model.Event, now time.Time) {
	window := fmt.Sprintf("%s to %s",
		e.StartDate.Local().Format("2006-01-02 15:04"),
		e.EndDate.Local().Format("15:04"),
	)
	when := theme.MetaStyle.Render(window)
	if e.StartDate.After(now) && e.StartDate.Before(now.Add(24*time.Hour)) {
		when = theme.DueSoonStyle.Render(window)
	}

	fmt.Printf("%s  %s\n", theme.TitleStyle.Render(e.Title), when)
	fmt.Println("  " + theme.MetaStyle.Render(e.ID))
	if e.Location != "" {
		fmt.Println("  " + theme.MetaStyle.Render("@ "+e.Location))
	}
	if e.Description != "" {
		fmt.Println("  " + theme.MetaStyle.Render(e.Description))
	}
}

func init() {
	eventAddCmd.Flags().StringVar(&eventAddStart, "start", "", "start time (YYYY-MM-DD HH:MM)")
	eventAddCmd.Flags().StringVar(&eventAddEnd, "end", "", "end time (defaults to one hour after start)")
	eventAddCmd.Flags().StringVar(&eventAddLocation, "location", "", "event location")
	eventAddCmd.Flags().StringVar(&eventAddDesc, "desc", "", "event description")
	eventAddCmd.MarkFlagRequired("start")

	eventCmd.AddCommand(eventAddCmd, eventListCmd, eventRmCmd)
	rootCmd.AddCommand(eventCmd)
}
