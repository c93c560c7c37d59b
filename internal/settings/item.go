// Package settings holds the declarative settings model: typed items grouped
// into tabs, the registry features append their tabs to, and the value store
// the renderer reads and the binder mutates.
package settings

// Kind is the closed set of item variants. It decides both the rendered
// control and the Value variant stored under the item's key.
type Kind string

const (
	KindText           Kind = "text"
	KindTextarea       Kind = "textarea"
	KindCheckbox       Kind = "checkbox"
	KindSelect         Kind = "select"
	KindButton         Kind = "button"
	KindTextWithSwitch Kind = "textWithSwitch"
	KindHeader         Kind = "header"
)

// Kinds lists every valid kind in declaration order.
var Kinds = []Kind{
	KindText,
	KindTextarea,
	KindCheckbox,
	KindSelect,
	KindButton,
	KindTextWithSwitch,
	KindHeader,
}

// Valid reports whether k belongs to the closed set.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// HasValue reports whether items of this kind read from and write to the store.
func (k Kind) HasValue() bool {
	switch k {
	case KindText, KindTextarea, KindCheckbox, KindSelect, KindTextWithSwitch:
		return true
	default:
		return false
	}
}

// String returns the kind as written in registrations.
func (k Kind) String() string {
	return string(k)
}

// Option is one entry of a select item.
type Option struct {
	Label string `yaml:"label" json:"label" validate:"required"`
	Value string `yaml:"value" json:"value"`
}

// Item is one configurable entry inside a Group.
type Item struct {
	// Key identifies the item in the store and derives its control ids.
	// Uniqueness is up to the registrant.
	Key         string `validate:"required,control_key"`
	Title       string
	Description string
	Kind        Kind `validate:"item_kind"`
	// Default is used when the store has no entry for Key.
	Default Value `validate:"-"`

	Placeholder string
	// Rows applies to textarea items; zero means the renderer default.
	Rows       int      `validate:"gte=0"`
	Options    []Option `validate:"omitempty,dive"`
	ButtonText string
	// OnClick is the item-level fallback for button activation.
	OnClick func() `validate:"-"`
}

// Group is a named tab of items. Name is the identity; Label is display text.
type Group struct {
	Name  string `validate:"required"`
	Label string
	Items []Item `validate:"dive"`
}

// ValueItems returns the items of g that participate in the store.
func (g Group) ValueItems() []Item {
	items := make([]Item, 0, len(g.Items))
	for _, item := range g.Items {
		if item.Kind.HasValue() {
			items = append(items, item)
		}
	}
	return items
}
