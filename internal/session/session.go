// Package session is the host composition root for one settings editing
// session: it loads persisted data, mounts the rendered panel into a
// container, binds it, saves every edit and drives the reset flow.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/settingsdeck/internal/bind"
	"github.com/alexisbeaulieu97/settingsdeck/internal/dom"
	"github.com/alexisbeaulieu97/settingsdeck/internal/features/about"
	"github.com/alexisbeaulieu97/settingsdeck/internal/logger"
	"github.com/alexisbeaulieu97/settingsdeck/internal/nav"
	"github.com/alexisbeaulieu97/settingsdeck/internal/persist"
	"github.com/alexisbeaulieu97/settingsdeck/internal/render"
	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

// Options configures a Session.
type Options struct {
	Registry   *settings.Registry
	Backend    persist.Backend
	StorageKey string
	Logger     *logger.Logger
	// DefaultTab is activated on the first mount when it names a registered group.
	DefaultTab string
	// Strict makes Mount fail on items of unknown kind.
	Strict bool
	// Buttons adds button handlers on top of the built-in ones.
	Buttons bind.HandlerMap
}

// Session owns the value store of one editing session. It is not safe for
// concurrent use; all calls come from the host's event loop.
type Session struct {
	id         string
	registry   *settings.Registry
	backend    persist.Backend
	storageKey string
	logger     *logger.Logger
	defaultTab string

	renderer  *render.Renderer
	binder    *bind.Binder
	container *dom.Container
	navigator *nav.Navigator
	buttons   bind.HandlerMap

	store   settings.Store
	active  string
	hooks   []func(settings.Store)
	saveErr error
}

// New builds a Session. Open must be called before Mount.
func New(opts Options) (*Session, error) {
	if opts.Registry == nil {
		return nil, errors.New("session requires a registry")
	}
	if opts.Backend == nil {
		return nil, errors.New("session requires a storage backend")
	}
	if opts.StorageKey == "" {
		return nil, errors.New("session requires a storage key")
	}

	id := uuid.NewString()
	log := opts.Logger.With("session", id)

	s := &Session{
		id:         id,
		registry:   opts.Registry,
		backend:    opts.Backend,
		storageKey: opts.StorageKey,
		logger:     log,
		defaultTab: opts.DefaultTab,
		renderer:   render.New(render.Options{Strict: opts.Strict, Logger: log}),
		binder:     bind.New(log),
		container:  dom.NewContainer(),
		store:      settings.NewStore(),
	}
	s.navigator = nav.New(s.container, func(name string) {
		s.active = name
		s.logger.Debug("group activated", "group", name)
	})

	s.buttons = bind.HandlerMap{
		about.DeleteConfigKey: func() {
			if err := s.Reset(context.Background()); err != nil {
				s.logger.Error(err, "failed to delete persisted settings")
			}
		},
	}
	for key, fn := range opts.Buttons {
		s.buttons[key] = fn
	}
	return s, nil
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Store returns the live value store.
func (s *Session) Store() settings.Store { return s.store }

// Container returns the container the panel is mounted into.
func (s *Session) Container() *dom.Container { return s.container }

// Navigator returns the active-group state machine of the mounted panel.
func (s *Session) Navigator() *nav.Navigator { return s.navigator }

// Registry returns the registry the session renders.
func (s *Session) Registry() *settings.Registry { return s.registry }

// Active returns the active group name.
func (s *Session) Active() string { return s.active }

// LastSaveError returns the error of the most recent failed save, cleared by
// the next successful one.
func (s *Session) LastSaveError() error { return s.saveErr }

// OnStoreChange registers fn to run after every edit and after reset. fn
// receives a snapshot; writing to it does not reach the session store.
func (s *Session) OnStoreChange(fn func(settings.Store)) {
	if fn != nil {
		s.hooks = append(s.hooks, fn)
	}
}

// Open seeds the store from the backend. Load failures and missing data both
// start the session from defaults; neither is returned as an error.
func (s *Session) Open(ctx context.Context) {
	raw, ok, err := s.backend.Load(ctx, s.storageKey)
	switch {
	case err != nil:
		s.logger.Warn("failed to load settings, using defaults", "key", s.storageKey, "error", err.Error())
		s.store = settings.NewStore()
	case !ok:
		s.logger.Debug("no persisted settings, using defaults", "key", s.storageKey)
		s.store = settings.NewStore()
	default:
		s.store = settings.DecodeStore(raw, s.registry.Groups())
		s.logger.Info("settings loaded", "key", s.storageKey, "entries", len(s.store))
		s.logger.Debug("loaded keys", "keys", strings.Join(s.store.Keys(), ","))
	}
}

// Mount renders the panel into the container and binds it. The active group
// survives remounts; on the first mount it is the configured default tab or
// the first registered group.
func (s *Session) Mount() (bind.Stats, error) {
	groups := s.registry.Groups()
	active := s.resolveActive(groups)

	out, err := s.renderer.Render(groups, active, s.store)
	if err != nil {
		return bind.Stats{}, fmt.Errorf("render settings: %w", err)
	}
	if err := s.container.SetInnerHTML(out); err != nil {
		return bind.Stats{}, err
	}

	stats := s.binder.Bind(s.container, groups, s.store, bind.Options{
		Buttons:  s.buttons,
		OnChange: s.changed,
	})
	s.navigator.Restore(active)
	s.navigator.Bind()
	s.active = active
	return stats, nil
}

func (s *Session) resolveActive(groups []settings.Group) string {
	candidates := []string{s.active, s.defaultTab}
	for _, name := range candidates {
		if name == "" {
			continue
		}
		for _, g := range groups {
			if g.Name == name {
				return name
			}
		}
		s.logger.Warn("unknown settings group, falling back", "group", name)
	}
	if len(groups) == 0 {
		return ""
	}
	return groups[0].Name
}

func (s *Session) changed(key string) {
	s.logger.Debug("setting changed", "key", key)
	s.save(context.Background())
	s.notify()
}

func (s *Session) notify() {
	for _, fn := range s.hooks {
		fn(s.store.Clone())
	}
}

func (s *Session) save(ctx context.Context) {
	if err := s.backend.Save(ctx, s.storageKey, s.store.Encode()); err != nil {
		s.saveErr = err
		s.logger.Error(err, "edit not durably saved", "key", s.storageKey)
		return
	}
	s.saveErr = nil
}

// Save writes the store to the backend and returns the failure, if any.
func (s *Session) Save(ctx context.Context) error {
	s.save(ctx)
	return s.saveErr
}

// Reset deletes the persisted data, replaces the store with an empty one and
// remounts the panel with the same active group. The local reset happens even
// when the backend fails; that failure is returned.
func (s *Session) Reset(ctx context.Context) error {
	removeErr := s.backend.Remove(ctx, s.storageKey)
	if removeErr != nil {
		s.logger.Error(removeErr, "failed to remove persisted settings", "key", s.storageKey)
	}

	s.store = settings.NewStore()
	if _, err := s.Mount(); err != nil {
		return err
	}
	s.logger.Info("settings reset", "key", s.storageKey, "group", s.active)
	s.notify()
	return removeErr
}

// Close performs the teardown save.
func (s *Session) Close(ctx context.Context) error {
	return s.Save(ctx)
}
