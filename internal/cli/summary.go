package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/effortum/effortum/internal/report"
	"github.com/effortum/effortum/internal/state"
)

func newSummaryCommand(ctx context.Context, app *state.App) *cobra.Command {
	var (
		fromFlag string
		toFlag   string
		allFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show total time per project for a date range.",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolveRange(fromFlag, toFlag, allFlag)
			if err != nil {
				return err
			}
			app.SetSelectedRange(r)

			totals := report.SummarizeByProject(app.Tasks(), r)
			if len(totals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no tasks)")
				return nil
			}
			for _, total := range totals {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", total.Project, report.FormatMinutes(total.TotalMinutes))
			}
			return nil
		},
	}

	addRangeFlags(cmd, &fromFlag, &toFlag, &allFlag)

	return cmd
}

func newCommentsCommand(ctx context.Context, app *state.App) *cobra.Command {
	var (
		fromFlag string
		toFlag   string
		allFlag  bool
		copyFlag bool
	)

	cmd := &cobra.Command{
		Use:   "comments <project>",
		Short: "Show the distinct task comments of a project for a date range.",
		Long: "comments prints the deduplicated, sorted comments logged against a " +
			"project within the date range, one per line. With --copy the same " +
			"text is placed on the system clipboard.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project := args[0]

			r, err := resolveRange(fromFlag, toFlag, allFlag)
			if err != nil {
				return err
			}
			app.SetSelectedRange(r)

			text := report.CommentsText(app.Tasks(), project, r)
			if text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}

			if copyFlag {
				if _, err := report.CopyComments(app.Tasks(), project, r); err != nil {
					// Clipboard trouble must not fail the command; the text
					// was already printed above.
					fmt.Fprintf(cmd.ErrOrStderr(), "Failed to copy comments to clipboard: %v\n", err)
				}
			}
			return nil
		},
	}

	addRangeFlags(cmd, &fromFlag, &toFlag, &allFlag)
	cmd.Flags().BoolVar(&copyFlag, "copy", false, "Also copy the comments to the clipboard")

	return cmd
}
