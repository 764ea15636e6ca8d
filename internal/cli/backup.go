package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/effortum/effortum/internal/backup"
	"github.com/effortum/effortum/internal/files"
	"github.com/effortum/effortum/internal/state"
)

func newExportCommand(ctx context.Context, app *state.App, manager *files.Manager) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of the whole database to a JSON file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := outFlag
			if dir == "" {
				var err error
				dir, err = manager.EnsureBackupsDir()
				if err != nil {
					return err
				}
			}

			path, err := backup.Export(ctx, app.Store(), dir, time.Now())
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Creation of database backup failed.")
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported database to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&outFlag, "out", "", "Directory to write the backup to (default: the backups directory)")

	return cmd
}

func newImportCommand(ctx context.Context, app *state.App) *cobra.Command {
	var yesFlag bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole database with a backup file.",
		Long: "import validates the backup document, then clears all collections and " +
			"bulk-loads the file's rows in one transaction. Any failure leaves the " +
			"existing database untouched.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yesFlag {
				fmt.Fprintln(cmd.OutOrStdout(), "Warning: This will completely replace your current database.")
				fmt.Fprintln(cmd.OutOrStdout(), "This action cannot be undone!")
				fmt.Fprint(cmd.OutOrStdout(), "Continue? [y/N]: ")

				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled.")
					return nil
				}
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("Import failed: %w", err)
			}
			defer file.Close()

			if err := backup.Import(ctx, app.Store(), file); err != nil {
				return fmt.Errorf("Import failed: %w", err)
			}

			// Rehydrate every in-memory collection from the replaced store,
			// the way the browser build forced a full page reload.
			if err := app.Load(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Database imported successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yesFlag, "yes", false, "Skip the confirmation prompt")

	return cmd
}
