package settings

import (
	"sync"

	"github.com/alexisbeaulieu97/settingsdeck/internal/logger"
)

// Registry is the ordered, append-only collection of groups that features
// register at startup. It never deduplicates: keys and names are kept apart
// by convention between registrants.
type Registry struct {
	mu     sync.RWMutex
	groups []Group
	logger *logger.Logger
}

// NewRegistry returns an empty registry. log may be nil.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{logger: log.With("component", "registry")}
}

// RegisterGroup appends g. It cannot fail; defaults that do not fit their
// item's kind are only logged, and Store.Effective ignores them.
func (r *Registry) RegisterGroup(g Group) {
	r.mu.Lock()
	r.groups = append(r.groups, g)
	count := len(r.groups)
	r.mu.Unlock()

	for _, item := range g.Items {
		if item.Kind.HasValue() && item.Default != nil && !DefaultFits(item.Kind, item.Default) {
			r.logger.Warn("default does not fit item kind, ignoring it", "group", g.Name, "key", item.Key, "kind", item.Kind.String())
		}
	}
	r.logger.Debug("group registered", "group", g.Name, "items", len(g.Items), "position", count-1)
}

// Groups returns the registered groups in registration order. The returned
// slice must be treated as read-only.
func (r *Registry) Groups() []Group {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.groups[:len(r.groups):len(r.groups)]
}

// Group returns the first group registered under name.
func (r *Registry) Group(name string) (Group, bool) {
	for _, g := range r.Groups() {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Names returns the group names in registration order.
func (r *Registry) Names() []string {
	groups := r.Groups()
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}

// Item returns the first item declared under key, searching groups in order.
func (r *Registry) Item(key string) (Item, bool) {
	for _, g := range r.Groups() {
		for _, item := range g.Items {
			if item.Key == key {
				return item, true
			}
		}
	}
	return Item{}, false
}

// Len returns the number of registered groups.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups)
}
