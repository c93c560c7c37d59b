package tui

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/settingsdeck/internal/markup"
	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeEdit:
			return m.handleEditKeys(msg)
		case ModeConfirm:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}
	}
	return m, nil
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "x":
		m.errMsg = ""
		m.status = ""
		return m, nil

	case "tab", "right", "l":
		return m.switchGroup(1), nil

	case "shift+tab", "left", "h":
		return m.switchGroup(-1), nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.selectable())-1 {
			m.cursor++
		}
		return m, nil

	case " ":
		return m.toggle(), nil

	case "enter":
		return m.activate(), nil
	}
	return m, nil
}

func (m Model) switchGroup(delta int) Model {
	groups := m.groups()
	if len(groups) == 0 {
		return m
	}
	next := (m.activeIndex() + delta + len(groups)) % len(groups)
	if err := m.session.Activate(groups[next].Name); err != nil {
		m.errMsg = err.Error()
		return m
	}
	m.cursor = 0
	return m
}

func (m Model) toggle() Model {
	item, ok := m.selected()
	if !ok {
		return m
	}
	c := m.session.Container()

	var err error
	switch item.Kind {
	case settings.KindCheckbox:
		el, found := c.ByID(markup.ControlID(item.Key))
		if !found {
			return m
		}
		err = m.session.Edit(item.Key, strconv.FormatBool(!el.Checked()))
	case settings.KindTextWithSwitch:
		el, found := c.ByID(markup.SwitchID(item.Key))
		if !found {
			return m
		}
		on := !el.Checked()
		err = m.session.EditComposite(item.Key, nil, &on)
	default:
		return m
	}
	return m.afterEdit(item, err)
}

func (m Model) activate() Model {
	item, ok := m.selected()
	if !ok {
		return m
	}

	switch item.Kind {
	case settings.KindText, settings.KindTextarea, settings.KindTextWithSwitch:
		return m.startEdit(item, m.storedText(item.Key))

	case settings.KindCheckbox:
		return m.toggle()

	case settings.KindSelect:
		if len(item.Options) == 0 {
			return m
		}
		next := item.Options[0].Value
		current := m.storedText(item.Key)
		for i, opt := range item.Options {
			if opt.Value == current {
				next = item.Options[(i+1)%len(item.Options)].Value
				break
			}
		}
		return m.afterEdit(item, m.session.Edit(item.Key, next))

	case settings.KindButton:
		if needsConfirmation(item.Key) {
			m.mode = ModeConfirm
			m.confirmKey = item.Key
			return m
		}
		return m.press(item)
	}
	return m
}

// storedText reads the value an edit starts from out of the session store,
// never the rendered control: parsing markup turns NUL into U+FFFD.
func (m Model) storedText(key string) string {
	v, _ := m.session.Value(key)
	if v == nil {
		return ""
	}
	return v.Scalar()
}

func (m Model) startEdit(item settings.Item, current string) Model {
	m.mode = ModeEdit
	m.editKey = item.Key
	m.input.SetValue(current)
	m.input.Placeholder = item.Placeholder
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeBrowse
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		key := m.editKey
		value := m.input.Value()
		m.mode = ModeBrowse
		m.input.Blur()
		item, ok := m.session.Registry().Item(key)
		if !ok {
			return m, nil
		}
		var err error
		if item.Kind == settings.KindTextWithSwitch {
			err = m.session.EditComposite(key, &value, nil)
		} else {
			err = m.session.Edit(key, value)
		}
		return m.afterEdit(item, err), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := m.confirmKey
	m.mode = ModeBrowse
	m.confirmKey = ""

	switch msg.String() {
	case "y", "Y":
		item, ok := m.session.Registry().Item(key)
		if !ok {
			return m, nil
		}
		return m.press(item), nil
	default:
		m.status = "cancelled"
		return m, nil
	}
}

func (m Model) press(item settings.Item) Model {
	if err := m.session.Press(item.Key); err != nil {
		m.errMsg = err.Error()
		return m
	}
	if n := len(m.selectable()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.errMsg = ""
	m.status = fmt.Sprintf("%s done", titleOf(item))
	return m
}

func (m Model) afterEdit(item settings.Item, err error) Model {
	if err != nil {
		m.errMsg = err.Error()
		return m
	}
	if saveErr := m.session.LastSaveError(); saveErr != nil {
		m.errMsg = "not saved: " + saveErr.Error()
		return m
	}
	m.errMsg = ""
	m.status = fmt.Sprintf("%s saved", titleOf(item))
	return m
}

// Close saves the session on teardown.
func (m Model) Close(ctx context.Context) error {
	return m.session.Close(ctx)
}

func titleOf(item settings.Item) string {
	if item.Title != "" {
		return item.Title
	}
	return item.Key
}
