package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/winimoid/organext/internal/model"
	"github.com/winimoid/organext/internal/theme"
)

var apptCmd = &cobra.Command{
	Use:   "appt",
	Short: "Manage appointments",
}

var (
	apptAddAt      string
	apptAddContact string
	apptAddNotes   string
)

var apptAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new appointment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		at, err := parseTimeFlag(apptAddAt)
		if err != nil {
			fatal("parsing --at", err)
		}

		appt := model.Appointment{
			Title:   args[0],
			Date:    at,
			Contact: apptAddContact,
			Notes:   apptAddNotes,
		}

		created, err := a.service.CreateAppointment(context.Background(), appt)
		if err != nil {
			fatal("creating appointment", err)
		}

		fmt.Println(theme.OKStyle.Render("appointment created"))
		printAppointment(created, time.Now())
	},
}

var apptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List appointments",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		appts, err := a.store.GetAppointments(context.Background())
		if err != nil {
			fatal("listing appointments", err)
		}

		if len(appts) == 0 {
			fmt.Println(theme.MetaStyle.Render("no appointments"))
			return
		}

		fmt.Println(theme.HeaderStyle.Render("Appointments"))
		now := time.Now()
		for _, ap := range appts {
			printAppointment(ap, now)
		}
	},
}

var apptRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an appointment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		if err := a.service.DeleteAppointment(context.Background(), args[0]); err != nil {
			fatal("deleting appointment", err)
		}
		fmt.Println(theme.OKStyle.Render("appointment deleted"))
	},
}

func printAppointment(ap model.Appointment, now time.Time) {
	label := ap.Date.Local().Format("2006-01-02 15:04")
	when := theme.MetaStyle.Render(label)
	switch {
	case ap.Date.Before(now):
		when = theme.OverdueStyle.Render(label + " (past)")
	case ap.Date.Before(now.Add(24 * time.Hour)):
		when = theme.DueSoonStyle.Render(label)
	}

	fmt.Printf("%s  %s\n", theme.TitleStyle.Render(ap.Title), when)
	fmt.Println("  " + theme.MetaStyle.Render(ap.ID))
	if ap.Contact != "" {
		fmt.Println("  " + theme.MetaStyle.Render("with "+ap.Contact))
	}
	if ap.Notes != "" {
		fmt.Println("  " + theme.MetaStyle.Render(ap.Notes))
	}
}

func init() {
	apptAddCmd.Flags().StringVar(&apptAddAt, "at", "", "appointment time (YYYY-MM-DD HH:MM)")
	apptAddCmd.Flags().StringVar(&apptAddContact, "contact", "", "who the appointment is with")
	apptAddCmd.Flags().StringVar(&apptAddNotes, "notes", "", "free-form notes")
	apptAddCmd.MarkFlagRequired("at")

	apptCmd.AddCommand(apptAddCmd, apptListCmd, apptRmCmd)
	rootCmd.AddCommand(apptCmd)
}
