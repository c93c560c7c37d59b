package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/settingsdeck/internal/dom"
	"github.com/alexisbeaulieu97/settingsdeck/internal/markup"
	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderItems())

	switch m.mode {
	case ModeEdit:
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
	case ModeConfirm:
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Confirm %s? This cannot be undone. (y/N)", m.confirmKey)))
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✗ " + m.errMsg))
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("✓ " + m.status))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTabs() string {
	active := m.session.Active()
	var tabs []string
	for _, g := range m.groups() {
		label := g.Label
		if label == "" {
			label = g.Name
		}
		if g.Name == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderItems() string {
	group, ok := m.activeGroup()
	if !ok {
		return descriptionStyle.Render("No settings registered.")
	}

	var lines []string
	index := 0
	for _, item := range group.Items {
		if item.Kind == settings.KindHeader {
			lines = append(lines, headerStyle.Render(item.Title))
			if item.Description != "" {
				lines = append(lines, descriptionStyle.Render(item.Description))
			}
			continue
		}
		if !item.Kind.Valid() {
			continue
		}

		line := fmt.Sprintf("%s  %s", titleOf(item), m.renderControl(item))
		if index == m.cursor {
			lines = append(lines, selectedItemStyle.Render(line))
		} else {
			lines = append(lines, itemStyle.Render(line))
		}
		if item.Description != "" && item.Kind != settings.KindButton {
			lines = append(lines, itemStyle.Render(descriptionStyle.Render(item.Description)))
		}
		index++
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderControl shows the control state as currently held by the container.
func (m Model) renderControl(item settings.Item) string {
	c := m.session.Container()
	switch item.Kind {
	case settings.KindText, settings.KindTextarea:
		el, _ := c.ByID(markup.ControlID(item.Key))
		return quoted(valueOf(el), item.Placeholder)
	case settings.KindCheckbox:
		el, _ := c.ByID(markup.ControlID(item.Key))
		return toggle(el != nil && el.Checked())
	case settings.KindSelect:
		el, _ := c.ByID(markup.ControlID(item.Key))
		current := valueOf(el)
		for _, opt := range item.Options {
			if opt.Value == current {
				return "‹" + opt.Label + "›"
			}
		}
		return "‹" + current + "›"
	case settings.KindTextWithSwitch:
		text, _ := c.ByID(markup.TextID(item.Key))
		sw, _ := c.ByID(markup.SwitchID(item.Key))
		return quoted(valueOf(text), item.Placeholder) + " " + toggle(sw != nil && sw.Checked())
	case settings.KindButton:
		label := item.ButtonText
		if label == "" {
			el, _ := c.ByID(markup.ControlID(item.Key))
			if el != nil {
				label = el.Text()
			}
		}
		return "[ " + label + " ]"
	default:
		return ""
	}
}

func (m Model) renderFooter() string {
	help := "tab/shift+tab switch group • ↑/↓ select • space toggle • enter edit/press • x clear • q quit"
	if m.mode == ModeEdit {
		help = "enter save • esc cancel"
	}
	return footerStyle.Render(help)
}

func valueOf(el *dom.Element) string {
	if el == nil {
		return ""
	}
	return el.Value()
}

func quoted(value, placeholder string) string {
	if value == "" && placeholder != "" {
		return descriptionStyle.Render(placeholder)
	}
	return fmt.Sprintf("%q", value)
}

func toggle(on bool) string {
	if on {
		return onStyle.Render("[on]")
	}
	return offStyle.Render("[off]")
}
