package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type tabsOptions struct {
	lint bool
}

func newTabsCmd(flags *rootFlags) *cobra.Command {
	opts := &tabsOptions{}

	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "List registered settings tabs and their items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), cmd, flags, "list tabs", cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TAB\tKEY\tKIND\tTITLE")
			for _, group := range app.registry.Groups() {
				for _, item := range group.Items {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", group.Name, item.Key, item.Kind, item.Title)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if !opts.lint {
				return nil
			}
			issues := app.registry.Lint()
			if len(issues) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n✓ No registration problems found in %d tab(s)\n", app.registry.Len())
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d registration problem(s):\n", len(issues))
			for _, issue := range issues {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  - %v\n", issue)
			}
			return newCommandError("lint tabs", "checking registrations", errors.Join(issues...), "Fix the reported items in their registering feature.")
		},
	}

	cmd.Flags().BoolVar(&opts.lint, "lint", false, "Check registrations for duplicate keys, invalid kinds and mismatched defaults")

	return cmd
}
