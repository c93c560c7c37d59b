// Package bind attaches listeners to rendered settings controls so user
// interaction flows back into a settings.Store.
package bind

import (
	"github.com/alexisbeaulieu97/settingsdeck/internal/dom"
	"github.com/alexisbeaulieu97/settingsdeck/internal/logger"
	"github.com/alexisbeaulieu97/settingsdeck/internal/markup"
	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

// HandlerResolver maps a button item key to its action.
type HandlerResolver interface {
	Resolve(key string) (func(), bool)
}

// HandlerMap is a HandlerResolver backed by a map.
type HandlerMap map[string]func()

// Resolve implements HandlerResolver. Nil entries count as absent.
func (m HandlerMap) Resolve(key string) (func(), bool) {
	fn, ok := m[key]
	return fn, ok && fn != nil
}

// Options carries the optional callbacks of a Bind call.
type Options struct {
	Buttons  HandlerResolver
	OnChange func(key string)
}

// Stats summarizes one Bind call.
type Stats struct {
	// Bound counts controls that received a listener.
	Bound int
	// Missing counts controls that were expected but not found.
	Missing int
}

// Binder wires containers to stores.
type Binder struct {
	logger *logger.Logger
}

// New returns a Binder that reports soft failures to log.
func New(log *logger.Logger) *Binder {
	return &Binder{logger: log.With("component", "binder")}
}

// Bind attaches listeners for every value and button item of groups to the
// matching controls in c. store must be non-nil; it is mutated in place.
//
// Bind does not check for listeners left by an earlier call. Callers replace
// the container markup before binding again.
func (b *Binder) Bind(c *dom.Container, groups []settings.Group, store settings.Store, opts Options) Stats {
	var stats Stats
	for _, group := range groups {
		for _, item := range group.Items {
			b.bindItem(c, item, store, opts, &stats)
		}
	}
	b.logger.Debug("bound settings controls", "bound", stats.Bound, "missing", stats.Missing)
	return stats
}

func (b *Binder) bindItem(c *dom.Container, item settings.Item, store settings.Store, opts Options, stats *Stats) {
	changed := func() {
		if opts.OnChange != nil {
			opts.OnChange(item.Key)
		}
	}

	switch item.Kind {
	case settings.KindText, settings.KindTextarea:
		b.listen(c, markup.ControlID(item.Key), dom.EventInput, stats, func(e dom.Event) {
			store.Set(item.Key, settings.Text(e.Target.Value()))
			changed()
		})

	case settings.KindSelect:
		b.listen(c, markup.ControlID(item.Key), dom.EventChange, stats, func(e dom.Event) {
			store.Set(item.Key, settings.Choice(e.Target.Value()))
			changed()
		})

	case settings.KindCheckbox:
		b.listen(c, markup.ControlID(item.Key), dom.EventChange, stats, func(e dom.Event) {
			store.Set(item.Key, settings.Bool(e.Target.Checked()))
			changed()
		})

	case settings.KindTextWithSwitch:
		if RepairComposite(store, item) {
			b.logger.Debug("initialized composite value", "key", item.Key)
		}
		b.listen(c, markup.TextID(item.Key), dom.EventInput, stats, func(e dom.Event) {
			current := currentComposite(store, item)
			current.Text = e.Target.Value()
			store.Set(item.Key, current)
			changed()
		})
		b.listen(c, markup.SwitchID(item.Key), dom.EventChange, stats, func(e dom.Event) {
			current := currentComposite(store, item)
			current.Enabled = e.Target.Checked()
			store.Set(item.Key, current)
			changed()
		})

	case settings.KindButton:
		b.listen(c, markup.ControlID(item.Key), dom.EventClick, stats, func(dom.Event) {
			if fn := resolveButton(item, opts.Buttons); fn != nil {
				fn()
				return
			}
			b.logger.Debug("button has no handler", "key", item.Key)
		})
	}
}

func (b *Binder) listen(c *dom.Container, id, event string, stats *Stats, fn dom.Listener) {
	el, ok := c.ByID(id)
	if !ok {
		stats.Missing++
		b.logger.Warn("settings control not found", "id", id)
		return
	}
	c.AddEventListener(el, event, fn)
	stats.Bound++
}

func resolveButton(item settings.Item, buttons HandlerResolver) func() {
	if buttons != nil {
		if fn, ok := buttons.Resolve(item.Key); ok {
			return fn
		}
	}
	return item.OnClick
}

// RepairComposite makes sure store holds a well-formed Composite for item,
// seeding it from the item default or the zero Composite. It reports whether
// the store was changed.
func RepairComposite(store settings.Store, item settings.Item) bool {
	if _, ok := settings.AsComposite(store[item.Key]); ok {
		return false
	}
	store.Set(item.Key, defaultComposite(item))
	return true
}

func currentComposite(store settings.Store, item settings.Item) settings.Composite {
	if c, ok := settings.AsComposite(store[item.Key]); ok {
		return c
	}
	return defaultComposite(item)
}

func defaultComposite(item settings.Item) settings.Composite {
	if c, ok := settings.AsComposite(item.Default); ok {
		return c
	}
	return settings.Composite{}
}
