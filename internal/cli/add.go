package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/effortum/effortum/internal/state"
	"github.com/effortum/effortum/internal/store"
)

func newAddCommand(ctx context.Context, app *state.App) *cobra.Command {
	var (
		dateFlag    string
		startFlag   string
		endFlag     string
		projectFlag string
		commentFlag string
		forceFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new task interval against a project.",
		Long: "add records a task with a start time and optionally an end time. " +
			"Leaving --end empty keeps the task open until it is stopped. " +
			"A project that does not exist yet is created on the fly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if open := app.OpenTask(); open != nil && !forceFlag {
				return fmt.Errorf("task %s (%s) is still open; stop it first or pass --force", open.ID, open.Project)
			}

			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			start := startFlag
			if start == "" {
				// The end time of the task stopped last in this session makes
				// a natural start for a back-to-back follow-up.
				start = app.EndTimeOfLastStopped()
			}

			if messages := validateTaskFields(date, start, endFlag, projectFlag); len(messages) > 0 {
				printValidationErrors(cmd, messages, "adding")
				return fmt.Errorf("invalid task")
			}

			task := store.Task{
				ID:        store.ID(uuid.NewString()),
				Date:      date,
				TimeStart: start,
				TimeEnd:   endFlag,
				Project:   projectFlag,
				Comment:   commentFlag,
			}
			if err := app.AddTask(ctx, task); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatTask(task))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Task date in YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&startFlag, "start", "", "Start time in HH:MM")
	cmd.Flags().StringVar(&endFlag, "end", "", "End time in HH:MM (leave empty to keep the task open)")
	cmd.Flags().StringVar(&projectFlag, "project", "", "Project name")
	cmd.Flags().StringVar(&commentFlag, "comment", "", "Comment for this task")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Add even while another task is open")

	return cmd
}
