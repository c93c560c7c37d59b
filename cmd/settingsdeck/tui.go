package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/settingsdeck/internal/tui"
)

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive settings panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}
}

func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Log lines would corrupt the alt screen, so they are dropped while it is up.
	app, err := openApp(ctx, cmd, flags, "launch settings panel", io.Discard)
	if err != nil {
		return err
	}
	defer app.close()

	if err := app.mount("launch settings panel"); err != nil {
		return err
	}

	model := tui.NewModel(app.session)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("settings panel failed: %w", err)
	}

	if m, ok := final.(tui.Model); ok {
		if err := m.Close(ctx); err != nil {
			return newCommandError("launch settings panel", "saving settings", err, "Check storage permissions and retry.")
		}
	}
	return nil
}
