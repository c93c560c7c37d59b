package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

func unknownKeyError(operation string, app *appContext, key string) error {
	var keys []string
	for _, g := range app.registry.Groups() {
		for _, item := range g.ValueItems() {
			keys = append(keys, item.Key)
		}
	}
	return newCommandError(operation, fmt.Sprintf("looking up setting %q", key), errors.New("no such setting"),
		didYouMean(key, keys, "Run 'settingsdeck tabs' to list the available keys."))
}

func formatValue(v settings.Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case settings.Text:
		return string(val)
	case settings.Choice:
		return string(val)
	default:
		raw, err := json.Marshal(v.Encode())
		if err != nil {
			return v.Scalar()
		}
		return string(raw)
	}
}

type getOptions struct {
	defaults bool
}

func newGetCmd(flags *rootFlags) *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), cmd, flags, "get setting", cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			item, ok := app.registry.Item(args[0])
			if !ok || !item.Kind.HasValue() {
				return unknownKeyError("get setting", app, args[0])
			}
			value := app.session.Store().Effective(item)
			if opts.defaults {
				value = settings.DefaultStore(app.registry.Groups())[item.Key]
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatValue(value))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.defaults, "default", false, "Print the registered default instead of the effective value")

	return cmd
}

type setOptions struct {
	enabled string
}

func newSetCmd(flags *rootFlags) *cobra.Command {
	opts := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Change a setting and save it",
		Long: `Change a setting and save it.

Checkbox values are booleans. For callout titles the value sets the text and
--switch turns the override on or off; either may be given alone.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, flags, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.enabled, "switch", "", "Switch state of a textWithSwitch setting (true or false)")

	return cmd
}

func runSet(cmd *cobra.Command, flags *rootFlags, opts *setOptions, args []string) error {
	app, err := openApp(cmd.Context(), cmd, flags, "set setting", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.close()

	key := args[0]
	item, ok := app.registry.Item(key)
	if !ok || !item.Kind.HasValue() {
		return unknownKeyError("set setting", app, key)
	}
	if err := app.mount("set setting"); err != nil {
		return err
	}

	switch {
	case item.Kind == settings.KindTextWithSwitch:
		var text *string
		var enabled *bool
		if len(args) == 2 {
			text = &args[1]
		}
		if opts.enabled != "" {
			on, err := strconv.ParseBool(opts.enabled)
			if err != nil {
				return newCommandError("set setting", "parsing --switch", err, "Use --switch=true or --switch=false.")
			}
			enabled = &on
		}
		if text == nil && enabled == nil {
			return newCommandError("set setting", fmt.Sprintf("updating %q", key), errors.New("nothing to change"), "Pass a title text, --switch, or both.")
		}
		err = app.session.EditComposite(key, text, enabled)
	case len(args) == 2:
		err = app.session.Edit(key, args[1])
	default:
		return newCommandError("set setting", fmt.Sprintf("updating %q", key), errors.New("missing value"), "Pass the new value after the key.")
	}
	if err != nil {
		return newCommandError("set setting", fmt.Sprintf("updating %q", key), err, "Check the value against 'settingsdeck tabs'.")
	}
	if err := app.session.LastSaveError(); err != nil {
		return newCommandError("set setting", "saving settings", err, "Check storage permissions and retry.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", key, formatValue(app.session.Store()[key]))
	return nil
}
