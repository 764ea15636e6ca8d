package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/effortum/effortum/internal/state"
	"github.com/effortum/effortum/internal/store"
)

func newUpdateCommand(ctx context.Context, app *state.App) *cobra.Command {
	var (
		dateFlag    string
		startFlag   string
		endFlag     string
		projectFlag string
		commentFlag string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an existing task.",
		Long: "update applies only the flags that were set and leaves every other " +
			"field alone. A changed project name is created if it is new, and a " +
			"non-empty comment is remembered as a suggestion for that project.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := store.ID(args[0])
			current := app.Task(id)
			if current == nil {
				return fmt.Errorf("update task %s: %w", id, state.ErrTaskNotFound)
			}

			var update store.TaskUpdate
			date, start, end, project := current.Date, current.TimeStart, current.TimeEnd, current.Project
			if cmd.Flags().Changed("date") {
				resolved, err := resolveDate(dateFlag)
				if err != nil {
					return err
				}
				date = resolved
				update.Date = &date
			}
			if cmd.Flags().Changed("start") {
				start = startFlag
				update.TimeStart = &start
			}
			if cmd.Flags().Changed("end") {
				end = endFlag
				update.TimeEnd = &end
			}
			if cmd.Flags().Changed("project") {
				project = projectFlag
				update.Project = &project
			}
			if cmd.Flags().Changed("comment") {
				update.Comment = &commentFlag
			}

			if messages := validateTaskFields(date, start, end, project); len(messages) > 0 {
				printValidationErrors(cmd, messages, "updating")
				return fmt.Errorf("invalid task")
			}

			if err := app.UpdateTask(ctx, id, update); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Task updated successfully!")
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Task date in YYYY-MM-DD")
	cmd.Flags().StringVar(&startFlag, "start", "", "Start time in HH:MM")
	cmd.Flags().StringVar(&endFlag, "end", "", "End time in HH:MM (empty reopens the task)")
	cmd.Flags().StringVar(&projectFlag, "project", "", "Project name")
	cmd.Flags().StringVar(&commentFlag, "comment", "", "Comment for this task")

	return cmd
}

func newStopCommand(ctx context.Context, app *state.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop [id]",
		Short: "Close the open task with the current wall-clock time.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id store.ID
			if len(args) == 1 {
				id = store.ID(args[0])
				task := app.Task(id)
				if task == nil {
					return fmt.Errorf("stop task %s: %w", id, state.ErrTaskNotFound)
				}
				if task.TimeEnd != "" {
					return fmt.Errorf("task %s already has an end time", id)
				}
			} else {
				open := app.OpenTask()
				if open == nil {
					return fmt.Errorf("no open task to stop")
				}
				id = open.ID
			}

			if err := app.StopTask(ctx, id, time.Now()); err != nil {
				return err
			}

			stopped := app.Task(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped %s at %s\n", stopped.Project, stopped.TimeEnd)
			return nil
		},
	}

	return cmd
}
