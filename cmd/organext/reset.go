package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/winimoid/organext/internal/theme"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all records and pending reminders",
	Long: "reset wipes every task, event, appointment, and conversation from\n" +
		"the database and clears all pending notifications. Settings and\n" +
		"credentials are kept.",
	Run: func(cmd *cobra.Command, args []string) {
		if !resetYes {
			fmt.Print("This deletes ALL records and pending reminders. Type 'yes' to continue: ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.TrimSpace(answer) != "yes" {
				fmt.Println("aborted")
				return
			}
		}

		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		if err := a.service.Reset(context.Background()); err != nil {
			fatal("resetting", err)
		}
		fmt.Println(theme.OKStyle.Render("all records and pending reminders cleared"))
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
