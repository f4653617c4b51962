package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/winimoid/organext/internal/model"
	"github.com/winimoid/organext/internal/store"
	"github.com/winimoid/organext/internal/theme"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var (
	taskAddDue  string
	taskAddDesc string
)

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		task := model.Task{
			Title:       args[0],
			Description: taskAddDesc,
		}
		if taskAddDue != "" {
			due, err := parseTimeFlag(taskAddDue)
			if err != nil {
				fatal("parsing --due", err)
			}
			task.DueDate = &due
		}

		created, err := a.service.CreateTask(context.Background(), task)
		if err != nil {
			fatal("creating task", err)
		}

		fmt.Println(theme.OKStyle.Render("task created"))
		printTask(created, time.Now())
	},
}

var (
	taskEditTitle    string
	taskEditDue      string
	taskEditDesc     string
	taskEditClearDue bool
)

var taskEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task's title, description, or due date",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		ctx := context.Background()
		task, err := a.store.GetTaskByID(ctx, args[0])
		if err != nil {
			fatal("loading task", err)
		}

		if cmd.Flags().Changed("title") {
			task.Title = taskEditTitle
		}
		if cmd.Flags().Changed("desc") {
			task.Description = taskEditDesc
		}
		if taskEditClearDue {
			task.DueDate = nil
		} else if taskEditDue != "" {
			due, err := parseTimeFlag(taskEditDue)
			if err != nil {
				fatal("parsing --due", err)
			}
			task.DueDate = &due
		}

		if err := a.service.UpdateTask(ctx, *task); err != nil {
			fatal("updating task", err)
		}

		fmt.Println(theme.OKStyle.Render("task updated"))
		printTask(*task, time.Now())
	},
}

var taskListAll bool

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		tasks, err := a.store.GetTasks(context.Background(), store.TaskFilter{
			IncludeCompleted: taskListAll,
		})
		if err != nil {
			fatal("listing tasks", err)
		}

		if len(tasks) == 0 {
			fmt.Println(theme.MetaStyle.Render("no tasks"))
			return
		}

		fmt.Println(theme.HeaderStyle.Render("Tasks"))
		now := time.Now()
		for _, t := range tasks {
			printTask(t, now)
		}
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		task, err := a.service.CompleteTask(context.Background(), args[0])
		if err != nil {
			fatal("completing task", err)
		}
		fmt.Println(theme.OKStyle.Render("completed: ") + theme.DoneStyle.Render(task.Title))
	},
}

var taskRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Reopen a completed task, due today",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		task, err := a.service.RestoreTask(context.Background(), args[0])
		if err != nil {
			fatal("restoring task", err)
		}
		fmt.Println(theme.OKStyle.Render("restored: ") + theme.TitleStyle.Render(task.Title))
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		if err := a.service.DeleteTask(context.Background(), args[0]); err != nil {
			fatal("deleting task", err)
		}
		fmt.Println(theme.OKStyle.Render("task deleted"))
	},
}

// printTask renders one task line with its due-date state.
func printTask(t model.Task, now time.Time) {
	title := theme.TitleStyle.Render(t.Title)
	if t.IsCompleted {
		title = theme.DoneStyle.Render(t.Title)
	}

	due := ""
	if t.DueDate != nil {
		label := t.DueDate.Local().Format("2006-01-02 15:04")
		switch {
		case t.IsCompleted:
			due = theme.MetaStyle.Render(label)
		case t.DueDate.Before(now):
			due = theme.OverdueStyle.Render(label + " (overdue)")
		case t.DueDate.Before(now.Add(24 * time.Hour)):
			due = theme.DueSoonStyle.Render(label)
		default:
			due = theme.MetaStyle.Render(label)
		}
		due = "  " + due
	}

	fmt.Printf("%s%s\n", title, due)
	fmt.Println("  " + theme.MetaStyle.Render(t.ID))
	if t.Description != "" {
		fmt.Println("  " + theme.MetaStyle.Render(t.Description))
	}
}

func init() {
	taskAddCmd.Flags().StringVar(&taskAddDue, "due", "", "due date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	taskAddCmd.Flags().StringVar(&taskAddDesc, "desc", "", "task description")
	taskListCmd.Flags().BoolVarP(&taskListAll, "all", "a", false, "include completed tasks")
	taskEditCmd.Flags().StringVar(&taskEditTitle, "title", "", "new title")
	taskEditCmd.Flags().StringVar(&taskEditDue, "due", "", "new due date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	taskEditCmd.Flags().StringVar(&taskEditDesc, "desc", "", "new description")
	taskEditCmd.Flags().BoolVar(&taskEditClearDue, "clear-due", false, "remove the due date")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskEditCmd, taskDoneCmd, taskRestoreCmd, taskRmCmd)
	rootCmd.AddCommand(taskCmd)
}
