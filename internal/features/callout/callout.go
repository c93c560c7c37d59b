// Package callout registers the callout title settings tab and turns its
// values into a stylesheet that overrides the built-in callout titles.
package callout

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/settingsdeck/internal/markup"
	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

const (
	// TabName identifies the callout group.
	TabName = "原生 Callout"
	// HeaderKey is the key of the explanatory header item.
	HeaderKey = "callout_header"
	// StyleID is the id of the style element carrying the generated rules.
	StyleID = "snippetCSS-callout-title-styles"

	keyPrefix = "callout_"
)

// Type describes one callout subtype.
type Type struct {
	Subtype        string
	Label          string
	DefaultTitle   string
	DefaultTitleZh string
	ColorVar       string
	SlashMenuID    string
}

// Key returns the settings key holding the title override for t.
func (t Type) Key() string {
	return keyPrefix + t.Subtype
}

// Types lists the supported callout subtypes in display order.
var Types = []Type{
	{Subtype: "NOTE", Label: "Note", DefaultTitle: "Note", DefaultTitleZh: "注意", ColorVar: "var(--b3-callout-note)", SlashMenuID: "calloutNote"},
	{Subtype: "TIP", Label: "Tip", DefaultTitle: "Tip", DefaultTitleZh: "提示", ColorVar: "var(--b3-callout-tip)", SlashMenuID: "calloutTip"},
	{Subtype: "IMPORTANT", Label: "Important", DefaultTitle: "Important", DefaultTitleZh: "重要", ColorVar: "var(--b3-callout-important)", SlashMenuID: "calloutImportant"},
	{Subtype: "WARNING", Label: "Warning", DefaultTitle: "Warning", DefaultTitleZh: "警告", ColorVar: "var(--b3-callout-warning)", SlashMenuID: "calloutWarning"},
	{Subtype: "CAUTION", Label: "Caution", DefaultTitle: "Caution", DefaultTitleZh: "谨慎", ColorVar: "var(--b3-callout-caution)", SlashMenuID: "calloutCaution"},
}

// Group returns the callout settings group.
func Group() settings.Group {
	items := []settings.Item{{
		Key:         HeaderKey,
		Title:       "原生 Callout 固定标题文本",
		Description: "注意，固定标题文本会覆盖自定义标题",
		Kind:        settings.KindHeader,
	}}
	for _, t := range Types {
		items = append(items, settings.Item{
			Key:         t.Key(),
			Title:       t.Label,
			Kind:        settings.KindTextWithSwitch,
			Default:     settings.Composite{Text: t.DefaultTitleZh},
			Placeholder: fmt.Sprintf("请输入 %s 的标题文本", t.Label),
		})
	}
	return settings.Group{Name: TabName, Label: "原生 Callout 固定标题文本", Items: items}
}

// Register adds the callout group to reg.
func Register(reg *settings.Registry) {
	reg.RegisterGroup(Group())
}

// Override is the effective title override of one callout type.
type Override struct {
	Type    Type
	Enabled bool
	Title   string
}

// Overrides resolves every callout type against store. A type is enabled
// only when its switch is on; an empty title falls back to the default.
func Overrides(store settings.Store) []Override {
	out := make([]Override, 0, len(Types))
	for _, t := range Types {
		o := Override{Type: t, Title: t.DefaultTitleZh}
		text, enabled, ok := readEntry(store[t.Key()])
		if ok {
			o.Enabled = enabled
			if text != "" {
				o.Title = text
			}
		}
		out = append(out, o)
	}
	return out
}

// readEntry accepts well-formed composites as well as loosely shaped
// persisted objects that at least carry a switch field.
func readEntry(v settings.Value) (text string, enabled bool, ok bool) {
	switch val := v.(type) {
	case settings.Composite:
		return val.Text, val.Enabled, true
	case settings.Unknown:
		fields, isMap := val.Data.(map[string]any)
		if !isMap {
			return "", false, false
		}
		sw, hasSwitch := fields["switch"]
		if !hasSwitch {
			return "", false, false
		}
		on, _ := sw.(bool)
		s, _ := fields["text"].(string)
		return s, on, true
	default:
		return "", false, false
	}
}

// GenerateCSS returns the title override rules for every enabled type, or
// the empty string when none is enabled.
func GenerateCSS(store settings.Store) string {
	var rules []string
	for _, o := range Overrides(store) {
		if !o.Enabled || o.Title == "" {
			continue
		}
		title := escapeContent(o.Title)
		t := o.Type
		rules = append(rules,
			fmt.Sprintf(`.callout[data-subtype="%[1]s"] .callout-title {
  color: transparent;
  width: 0;
  line-height: 0;
}
.callout[data-subtype="%[1]s"] .callout-title::before {
  content: "%[2]s";
  color: %[3]s;
  white-space: nowrap;
}`, t.Subtype, title, t.ColorVar),
			fmt.Sprintf(`.hint--menu button[data-id="%[1]s"] .b3-list-item__text span {
  color: transparent !important;
}
.hint--menu button[data-id="%[1]s"] .b3-list-item__text span::before {
  content: "%[2]s";
  color: %[3]s;
}`, t.SlashMenuID, title, t.ColorVar),
		)
	}
	return strings.Join(rules, "\n")
}

// Angle brackets become CSS hex escapes so a title can never close the
// surrounding style element.
var contentEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ", "\r", "", "<", `\3C `, ">", `\3E `)

func escapeContent(s string) string {
	return contentEscaper.Replace(s)
}

// StyleElement wraps the generated rules in a style element carrying StyleID.
func StyleElement(store settings.Store) (string, error) {
	return markup.Render(markup.El("style", markup.Attrs(markup.Attr("id", StyleID)), markup.Text(GenerateCSS(store))))
}
