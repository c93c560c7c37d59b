// Package nav implements the active-group state machine over a mounted
// settings panel.
package nav

import (
	"fmt"

	"github.com/alexisbeaulieu97/settingsdeck/internal/dom"
	"github.com/alexisbeaulieu97/settingsdeck/internal/markup"
)

// Navigator tracks which group of a container is active. The zero state,
// before the first activation, is the empty name.
type Navigator struct {
	container *dom.Container
	active    string
	onChange  func(name string)
}

// New returns a Navigator for c. onChange, when non-nil, receives every newly
// activated group name so the host can supply it to the next render.
func New(c *dom.Container, onChange func(name string)) *Navigator {
	return &Navigator{container: c, onChange: onChange}
}

// Active returns the active group name, or "" when none was activated.
func (n *Navigator) Active() string {
	return n.active
}

// Restore sets the active name without touching the markup, for a container
// whose markup was rendered with that group already active.
func (n *Navigator) Restore(name string) {
	n.active = name
}

// Activate focuses the tab entry of name, reveals its content region and
// hides every other region. Unknown names leave the state unchanged.
func (n *Navigator) Activate(name string) error {
	entries := n.container.QueryAll(markup.ByAttr(markup.TabAttr))
	found := false
	for _, entry := range entries {
		v, _ := entry.Attr(markup.TabAttr)
		if v == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no group named %q", name)
	}

	for _, entry := range entries {
		v, _ := entry.Attr(markup.TabAttr)
		entry.ToggleClass(markup.FocusClass, v == name)
	}
	for _, region := range n.container.QueryAll(markup.ByClass(markup.ContentClass)) {
		v, _ := region.Attr(markup.ContentNameAttr)
		region.ToggleClass(markup.HiddenClass, v != name)
	}

	n.active = name
	if n.onChange != nil {
		n.onChange(name)
	}
	return nil
}

// Bind makes clicks on tab entries activate their group. Like the binder it
// must run once per mounted markup.
func (n *Navigator) Bind() int {
	entries := n.container.QueryAll(markup.ByAttr(markup.TabAttr))
	for _, entry := range entries {
		name, _ := entry.Attr(markup.TabAttr)
		n.container.AddEventListener(entry, dom.EventClick, func(dom.Event) {
			_ = n.Activate(name)
		})
	}
	return len(entries)
}
