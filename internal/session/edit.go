package session

import (
	"fmt"
	"strconv"

	"github.com/alexisbeaulieu97/settingsdeck/internal/markup"
	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

// Edits go through the mounted container so they take the same path as user
// interaction: control state changes, the bound listener writes the store,
// and the change is saved.

// Edit sets the value of a text, textarea, checkbox or select item from its
// string form.
func (s *Session) Edit(key, value string) error {
	item, ok := s.registry.Item(key)
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}

	id := markup.ControlID(key)
	switch item.Kind {
	case settings.KindText, settings.KindTextarea:
		return s.container.Input(id, value)
	case settings.KindCheckbox:
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("setting %q expects a boolean: %w", key, err)
		}
		return s.container.Check(id, on)
	case settings.KindSelect:
		return s.container.Choose(id, value)
	case settings.KindTextWithSwitch:
		return s.EditComposite(key, &value, nil)
	default:
		return fmt.Errorf("setting %q of kind %s holds no value", key, item.Kind)
	}
}

// EditComposite updates the text, the switch or both fields of a
// textWithSwitch item. Nil arguments leave their field untouched.
func (s *Session) EditComposite(key string, text *string, enabled *bool) error {
	item, ok := s.registry.Item(key)
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	if item.Kind != settings.KindTextWithSwitch {
		return fmt.Errorf("setting %q is not a textWithSwitch item", key)
	}
	if text != nil {
		if err := s.container.Input(markup.TextID(key), *text); err != nil {
			return err
		}
	}
	if enabled != nil {
		if err := s.container.Check(markup.SwitchID(key), *enabled); err != nil {
			return err
		}
	}
	return nil
}

// Press clicks a button item.
func (s *Session) Press(key string) error {
	item, ok := s.registry.Item(key)
	if !ok || item.Kind != settings.KindButton {
		return fmt.Errorf("unknown button %q", key)
	}
	return s.container.Click(markup.ControlID(key))
}

// Activate switches the visible group as a tab click would.
func (s *Session) Activate(name string) error {
	return s.container.ClickTab(name)
}

// Value returns the effective value of key: the stored value or the item default.
func (s *Session) Value(key string) (settings.Value, bool) {
	item, ok := s.registry.Item(key)
	if !ok {
		return nil, false
	}
	return s.store.Effective(item), true
}
