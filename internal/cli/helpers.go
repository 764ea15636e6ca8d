package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/effortum/effortum/internal/report"
	"github.com/effortum/effortum/internal/store"
	"github.com/effortum/effortum/internal/validate"
)

func today() string {
	return time.Now().In(time.Local).Format("2006-01-02")
}

func resolveDate(dateFlag string) (string, error) {
	if dateFlag == "" {
		return today(), nil
	}
	if _, err := time.Parse("2006-01-02", dateFlag); err != nil {
		return "", fmt.Errorf("parse date: %w", err)
	}
	return dateFlag, nil
}

// resolveRange turns the --from/--to/--all flag triple into a date range.
// With no flags the range is today, matching the default selection the
// summary view starts with.
func resolveRange(from, to string, all bool) (report.Range, error) {
	if all {
		return report.All(), nil
	}
	if from == "" && to == "" {
		return report.Day(today()), nil
	}
	if from != "" {
		if _, err := time.Parse("2006-01-02", from); err != nil {
			return report.Range{}, fmt.Errorf("parse --from: %w", err)
		}
	}
	if to == "" {
		return report.Range{Start: &from}, nil
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return report.Range{}, fmt.Errorf("parse --to: %w", err)
	}
	if from == "" {
		return report.Range{}, fmt.Errorf("--to requires --from")
	}
	return report.Between(from, to), nil
}

func addRangeFlags(cmd *cobra.Command, from, to *string, all *bool) {
	cmd.Flags().StringVar(from, "from", "", "Range start in YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(to, "to", "", "Range end in YYYY-MM-DD, inclusive")
	cmd.Flags().BoolVar(all, "all", false, "Ignore the date range and include every task")
}

func formatTask(task store.Task) string {
	end := task.TimeEnd
	if end == "" {
		end = "..."
	}

	builder := strings.Builder{}
	builder.Grow(64 + len(task.Project) + len(task.Comment))

	builder.WriteString(string(task.ID))
	builder.WriteString("  ")
	builder.WriteString(task.Date)
	builder.WriteString("  ")
	builder.WriteString(task.TimeStart)
	builder.WriteString("-")
	builder.WriteString(end)
	builder.WriteString("  [")
	builder.WriteString(report.Duration(task.TimeStart, task.TimeEnd))
	builder.WriteString("]  ")
	builder.WriteString(task.Project)

	if task.Comment != "" {
		builder.WriteString(": ")
		builder.WriteString(task.Comment)
	}

	return builder.String()
}

func printTasks(cmd *cobra.Command, tasks []store.Task) {
	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "(no tasks)")
		return
	}
	for _, task := range tasks {
		fmt.Fprintln(out, formatTask(task))
	}
}

// validateTaskFields runs the field validators and collects every message.
func validateTaskFields(date, start, end, project string) []string {
	var messages []string
	for _, message := range []string{
		validate.Date(date),
		validate.Start(start),
		validate.End(end, start),
		validate.Project(project),
	} {
		if message != "" {
			messages = append(messages, message)
		}
	}
	return messages
}

func printValidationErrors(cmd *cobra.Command, messages []string, action string) {
	out := cmd.OutOrStdout()
	for _, message := range messages {
		fmt.Fprintln(out, message)
	}
	fmt.Fprintf(out, "Please fix validation errors before %s the task.\n", action)
}
