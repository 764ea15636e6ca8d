package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/effortum/effortum/internal/files"
	"github.com/effortum/effortum/internal/state"
	"github.com/effortum/effortum/internal/store"
	"github.com/effortum/effortum/internal/ui"
)

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context, app *state.App, manager *files.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "effortum",
		Short: "Track time against projects from your terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := ui.NewModel(ctx, app)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newAddCommand(ctx, app),
		newListCommand(ctx, app),
		newUpdateCommand(ctx, app),
		newStopCommand(ctx, app),
		newProjectsCommand(ctx, app),
		newSummaryCommand(ctx, app),
		newCommentsCommand(ctx, app),
		newOvertimeCommand(ctx, app),
		newExportCommand(ctx, app, manager),
		newImportCommand(ctx, app),
		newVersionCommand(),
	)

	return cmd
}

// ExecuteCommand wires the store and state cache, then executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	// A .env next to the binary may override EFFORTUM_HOME; its absence is fine.
	_ = godotenv.Load()

	manager, err := files.NewManager("")
	if err != nil {
		return err
	}
	dbPath, err := manager.EnsureDatabaseDir()
	if err != nil {
		return err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}

	app := state.New(st)
	if err := app.Load(ctx); err != nil {
		return err
	}

	cmd := NewRootCommand(ctx, app, manager)
	return cmd.Execute()
}

// Main is a helper used by cmd/effortum/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
