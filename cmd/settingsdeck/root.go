package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile  string
	logLevel    string
	human       bool
	backend     string
	storagePath string
	storageKey  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "settingsdeck",
		Short:         "Settingsdeck edits plugin settings tabs from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without a subcommand, launch the interactive panel when attached to a terminal.
			if len(args) == 0 && isTerminal(cmd.InOrStdin()) && isTerminal(cmd.OutOrStdout()) {
				return runTUI(cmd, flags)
			}
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "Path to the settingsdeck config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	pf.BoolVar(&flags.human, "human", false, "Human readable log output")
	pf.StringVar(&flags.backend, "backend", "", "Storage backend (file, sqlite, memory)")
	pf.StringVar(&flags.storagePath, "storage-path", "", "Storage directory (file) or database file (sqlite)")
	pf.StringVar(&flags.storageKey, "storage-key", "", "Storage key the settings are saved under")

	cmd.AddCommand(newTUICmd(flags))
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newCSSCmd(flags))
	cmd.AddCommand(newTabsCmd(flags))
	cmd.AddCommand(newGetCmd(flags))
	cmd.AddCommand(newSetCmd(flags))
	cmd.AddCommand(newResetCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
