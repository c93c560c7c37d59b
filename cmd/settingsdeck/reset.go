package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/settingsdeck/internal/features/about"
	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

type resetOptions struct {
	force bool
}

func newResetCmd(flags *rootFlags) *cobra.Command {
	opts := &resetOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all saved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd, flags, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Reset without confirmation")

	return cmd
}

func runReset(cmd *cobra.Command, flags *rootFlags, opts *resetOptions) error {
	app, err := openApp(cmd.Context(), cmd, flags, "reset settings", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.close()

	if !opts.force {
		confirmed, err := confirmReset(cmd, app.registry, app.cfg.Storage.Key)
		if err != nil {
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := app.mount("reset settings"); err != nil {
		return err
	}
	if err := app.session.Reset(cmd.Context()); err != nil {
		return newCommandError("reset settings", "deleting saved settings", err, "Check storage permissions and retry.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted saved settings '%s'\n", app.cfg.Storage.Key)
	return nil
}

func confirmReset(cmd *cobra.Command, reg *settings.Registry, key string) (bool, error) {
	if !isTerminal(cmd.InOrStdin()) {
		return false, newCommandError("reset settings", "prompting for confirmation", errors.New("not a terminal"), "Use --force when running in non-interactive environments.")
	}

	item, _ := reg.Item(about.DeleteConfigKey)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)? %s [y/N]: ", item.Title, key, item.Description)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false, scanner.Err()
	}

	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

func isTerminal(stream any) bool {
	if file, ok := stream.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}
