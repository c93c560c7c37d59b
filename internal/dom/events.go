package dom

import (
	"fmt"

	"github.com/alexisbeaulieu97/settingsdeck/internal/markup"
)

// The helpers below replay user interaction the way a host forwards it:
// update the control state, then dispatch the matching event.

// Input sets the value of the control with the given id and dispatches "input".
func (c *Container) Input(id, value string) error {
	el, ok := c.ByID(id)
	if !ok {
		return fmt.Errorf("no element with id %q", id)
	}
	el.SetValue(value)
	c.Dispatch(el, EventInput)
	return nil
}

// Check sets the checked state of the checkbox with the given id and dispatches "change".
func (c *Container) Check(id string, on bool) error {
	el, ok := c.ByID(id)
	if !ok {
		return fmt.Errorf("no element with id %q", id)
	}
	el.SetChecked(on)
	c.Dispatch(el, EventChange)
	return nil
}

// Choose selects the option with value on the select with the given id and dispatches "change".
func (c *Container) Choose(id, value string) error {
	el, ok := c.ByID(id)
	if !ok {
		return fmt.Errorf("no element with id %q", id)
	}
	found := false
	for _, v := range el.Options() {
		if v == value {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("select %q has no option %q", id, value)
	}
	el.SetValue(value)
	c.Dispatch(el, EventChange)
	return nil
}

// Click dispatches "click" on the element with the given id.
func (c *Container) Click(id string) error {
	el, ok := c.ByID(id)
	if !ok {
		return fmt.Errorf("no element with id %q", id)
	}
	c.Dispatch(el, EventClick)
	return nil
}

// ClickTab dispatches "click" on the tab list entry for the named group.
func (c *Container) ClickTab(name string) error {
	for _, el := range c.QueryAll(markup.ByAttr(markup.TabAttr)) {
		if v, _ := el.Attr(markup.TabAttr); v == name {
			c.Dispatch(el, EventClick)
			return nil
		}
	}
	return fmt.Errorf("no tab entry %q", name)
}
