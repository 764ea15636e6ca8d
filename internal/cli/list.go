package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/effortum/effortum/internal/report"
	"github.com/effortum/effortum/internal/state"
)

func newListCommand(ctx context.Context, app *state.App) *cobra.Command {
	var (
		fromFlag string
		toFlag   string
		allFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show logged tasks for a date range.",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolveRange(fromFlag, toFlag, allFlag)
			if err != nil {
				return err
			}
			app.SetSelectedRange(r)

			printTasks(cmd, report.FilterTasks(app.Tasks(), r))
			return nil
		},
	}

	addRangeFlags(cmd, &fromFlag, &toFlag, &allFlag)

	return cmd
}

func newProjectsCommand(ctx context.Context, app *state.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List every known project name.",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects := app.Projects()
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no projects)")
				return nil
			}
			for _, project := range projects {
				fmt.Fprintln(cmd.OutOrStdout(), project.Name)
			}
			return nil
		},
	}

	return cmd
}
