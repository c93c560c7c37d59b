// Package tui hosts a mounted settings session in the terminal. Every key
// press is replayed against the session's container, so the terminal view
// goes through the same binder and navigator as any other host.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/settingsdeck/internal/features/about"
	"github.com/alexisbeaulieu97/settingsdeck/internal/session"
	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

// Mode is the interaction mode of the model.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeEdit
	ModeConfirm
)

// Model is the Bubbletea model of the settings panel.
type Model struct {
	session *session.Session

	mode   Mode
	cursor int
	input  textinput.Model

	// editKey is the item being edited in ModeEdit.
	editKey string
	// confirmKey is the button awaiting confirmation in ModeConfirm.
	confirmKey string

	status string
	errMsg string

	width  int
	height int
}

// NewModel returns a model over a session that has already been mounted.
func NewModel(s *session.Session) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 0

	return Model{
		session: s,
		mode:    ModeBrowse,
		input:   input,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Mode returns the current interaction mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Cursor returns the index of the selected item among the active group's
// selectable items.
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) groups() []settings.Group {
	return m.session.Registry().Groups()
}

func (m Model) activeIndex() int {
	active := m.session.Active()
	for i, g := range m.groups() {
		if g.Name == active {
			return i
		}
	}
	return 0
}

func (m Model) activeGroup() (settings.Group, bool) {
	groups := m.groups()
	if len(groups) == 0 {
		return settings.Group{}, false
	}
	return groups[m.activeIndex()], true
}

// selectable returns the items of the active group the cursor can land on.
func (m Model) selectable() []settings.Item {
	group, ok := m.activeGroup()
	if !ok {
		return nil
	}
	var items []settings.Item
	for _, item := range group.Items {
		if item.Kind == settings.KindHeader || !item.Kind.Valid() {
			continue
		}
		items = append(items, item)
	}
	return items
}

func (m Model) selected() (settings.Item, bool) {
	items := m.selectable()
	if m.cursor < 0 || m.cursor >= len(items) {
		return settings.Item{}, false
	}
	return items[m.cursor], true
}

// needsConfirmation lists buttons whose action cannot be undone.
func needsConfirmation(key string) bool {
	return key == about.DeleteConfigKey
}
