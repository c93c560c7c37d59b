package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/settingsdeck/internal/config"
	"github.com/alexisbeaulieu97/settingsdeck/internal/features/about"
	"github.com/alexisbeaulieu97/settingsdeck/internal/features/callout"
	"github.com/alexisbeaulieu97/settingsdeck/internal/logger"
	"github.com/alexisbeaulieu97/settingsdeck/internal/persist"
	"github.com/alexisbeaulieu97/settingsdeck/internal/session"
	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

// appContext bundles the services one command invocation works with.
type appContext struct {
	cfg      *config.Config
	logger   *logger.Logger
	registry *settings.Registry
	backend  persist.Backend
	session  *session.Session
}

// overrides collects the persistent flags the user actually set.
func (f *rootFlags) overrides(cmd *cobra.Command) map[string]any {
	out := map[string]any{}
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("log-level") {
		out["log.level"] = f.logLevel
	}
	if changed("human") {
		out["log.human"] = f.human
	}
	if changed("backend") {
		out["storage.backend"] = f.backend
	}
	if changed("storage-path") {
		out["storage.path"] = f.storagePath
	}
	if changed("storage-key") {
		out["storage.key"] = f.storageKey
	}
	return out
}

// newRegistry registers every built-in settings tab.
func newRegistry(log *logger.Logger) *settings.Registry {
	reg := settings.NewRegistry(log)
	callout.Register(reg)
	about.Register(reg)
	return reg
}

// openApp loads configuration, opens storage and starts a session. The
// session is opened but not mounted.
func openApp(ctx context.Context, cmd *cobra.Command, flags *rootFlags, operation string, logWriter io.Writer) (*appContext, error) {
	cfg, err := config.Load(config.Options{File: flags.configFile, Overrides: flags.overrides(cmd)})
	if err != nil {
		return nil, newCommandError(operation, "loading configuration", err, "Fix the configuration file or the SETTINGSDECK_* environment variables.")
	}

	log, err := logger.New(logger.Options{
		Level:         cfg.Log.Level,
		HumanReadable: cfg.Log.Human,
		Writer:        logWriter,
		Component:     "settingsdeck",
	})
	if err != nil {
		return nil, newCommandError(operation, "creating logger", err, "Use one of trace, debug, info, warn or error.")
	}

	backend, err := persist.Open(ctx, cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, newCommandError(operation, "opening storage", err, "Check that the storage path exists and is writable.")
	}

	reg := newRegistry(log)
	s, err := session.New(session.Options{
		Registry:   reg,
		Backend:    backend,
		StorageKey: cfg.Storage.Key,
		Logger:     log,
		DefaultTab: cfg.UI.DefaultTab,
		Strict:     cfg.UI.Strict,
	})
	if err != nil {
		backend.Close()
		return nil, newCommandError(operation, "starting session", err, "Check the storage configuration.")
	}
	s.Open(ctx)

	return &appContext{cfg: cfg, logger: log, registry: reg, backend: backend, session: s}, nil
}

// mount renders the session into its container and binds it.
func (a *appContext) mount(operation string) error {
	if _, err := a.session.Mount(); err != nil {
		return newCommandError(operation, "rendering settings", err, "Run 'settingsdeck tabs --lint' to find the offending item.")
	}
	return nil
}

func (a *appContext) close() {
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("failed to close storage", "error", err.Error())
	}
}
