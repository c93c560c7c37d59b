package settings

import (
	"sort"
)

// Store maps item keys to their current values for one editing session.
// It is owned by the host and passed by reference to the renderer and binder.
type Store map[string]Value

// NewStore returns an empty store.
func NewStore() Store {
	return make(Store)
}

// Get returns the stored value for key.
func (s Store) Get(key string) (Value, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s[key]
	return v, ok
}

// Set stores v under key.
func (s Store) Set(key string, v Value) {
	s[key] = v
}

// Effective resolves the value shown for item: the stored entry when present,
// otherwise the item's default. A default whose variant does not fit the
// item's kind is ignored. The result is nil when neither exists.
func (s Store) Effective(item Item) Value {
	if v, ok := s.Get(item.Key); ok && v != nil {
		return v
	}
	if item.Default == nil || !DefaultFits(item.Kind, item.Default) {
		return nil
	}
	return item.Default
}

// Clone returns a shallow copy; values are immutable so this is a full copy.
func (s Store) Clone() Store {
	clone := make(Store, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}

// Keys returns the stored keys sorted.
func (s Store) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Encode converts the store into the loosely-typed map persisted by backends.
func (s Store) Encode() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		if v == nil {
			continue
		}
		out[k] = v.Encode()
	}
	return out
}

// DecodeStore types persisted data using the kinds declared in groups. The
// first item declaring a key decides its variant. Entries with a wrong shape,
// or with no declaring item, are kept as Unknown.
func DecodeStore(raw map[string]any, groups []Group) Store {
	kinds := make(map[string]Kind)
	for _, group := range groups {
		for _, item := range group.Items {
			if !item.Kind.HasValue() {
				continue
			}
			if _, seen := kinds[item.Key]; !seen {
				kinds[item.Key] = item.Kind
			}
		}
	}

	store := make(Store, len(raw))
	for key, value := range raw {
		kind, ok := kinds[key]
		if !ok {
			store[key] = Unknown{Data: value}
			continue
		}
		store[key] = decodeValue(kind, value)
	}
	return store
}

// DefaultStore seeds a store from every item default.
func DefaultStore(groups []Group) Store {
	store := NewStore()
	for _, group := range groups {
		for _, item := range group.Items {
			if !item.Kind.HasValue() || item.Default == nil || !DefaultFits(item.Kind, item.Default) {
				continue
			}
			if _, exists := store[item.Key]; exists {
				continue
			}
			store[item.Key] = item.Default
		}
	}
	return store
}
