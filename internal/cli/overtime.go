package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/effortum/effortum/internal/state"
	"github.com/effortum/effortum/internal/validate"
)

func newOvertimeCommand(ctx context.Context, app *state.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overtime",
		Short: "Show or change the overtime settings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := app.Overtime()
			if settings == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No overtime settings stored.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Current balance: %gh\n", settings.CurrentBalance)
			fmt.Fprintf(cmd.OutOrStdout(), "Working hours per day: %gh\n", settings.WorkingHoursPerDay)
			return nil
		},
	}

	cmd.AddCommand(newOvertimeSetCommand(ctx, app))

	return cmd
}

func newOvertimeSetCommand(ctx context.Context, app *state.App) *cobra.Command {
	var (
		balanceFlag string
		hoursFlag   string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the overtime balance and daily working hours.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if message := validate.CurrentBalance(balanceFlag); message != "" {
				return fmt.Errorf("--balance: %s", message)
			}
			if message := validate.WorkingHoursPerDay(hoursFlag); message != "" {
				return fmt.Errorf("--hours: %s", message)
			}

			balance, _ := strconv.ParseFloat(balanceFlag, 64)
			hours, _ := strconv.ParseFloat(hoursFlag, 64)

			if err := app.SaveOvertime(ctx, balance, hours); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Overtime settings saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&balanceFlag, "balance", "", "Accumulated overtime balance in hours (may be negative)")
	cmd.Flags().StringVar(&hoursFlag, "hours", "", "Working hours per day, above 0 and at most 24")
	_ = cmd.MarkFlagRequired("balance")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}
