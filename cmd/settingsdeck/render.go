package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type renderOptions struct {
	tab string
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the settings panel markup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.tab, "tab", "t", "", "Group to show as active")

	return cmd
}

func runRender(cmd *cobra.Command, flags *rootFlags, opts *renderOptions) error {
	app, err := openApp(cmd.Context(), cmd, flags, "render", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.close()

	if opts.tab != "" {
		if _, ok := app.registry.Group(opts.tab); !ok {
			return newCommandError("render", fmt.Sprintf("selecting tab %q", opts.tab), fmt.Errorf("no such tab"),
				didYouMean(opts.tab, app.registry.Names(), "Run 'settingsdeck tabs' to list the registered tabs."))
		}
	}
	if err := app.mount("render"); err != nil {
		return err
	}
	if opts.tab != "" {
		if err := app.session.Activate(opts.tab); err != nil {
			return newCommandError("render", fmt.Sprintf("selecting tab %q", opts.tab), err, "Run 'settingsdeck tabs' to list the registered tabs.")
		}
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.session.Container().InnerHTML())
	return nil
}
