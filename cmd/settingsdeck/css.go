package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/settingsdeck/internal/features/callout"
)

type cssOptions struct {
	element bool
}

func newCSSCmd(flags *rootFlags) *cobra.Command {
	opts := &cssOptions{}

	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print the callout title stylesheet generated from the saved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), cmd, flags, "generate css", cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			out := callout.GenerateCSS(app.session.Store())
			if opts.element {
				out, err = callout.StyleElement(app.session.Store())
				if err != nil {
					return newCommandError("generate css", "rendering style element", err, "Report this as a bug.")
				}
			}
			if out != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.element, "element", false, fmt.Sprintf("Wrap the rules in <style id=%q>", callout.StyleID))

	return cmd
}
