// Package render turns registered groups and a value store into settings
// markup. Rendering is a pure function of its inputs: identical groups,
// active group and store always produce byte-identical output.
package render

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/alexisbeaulieu97/settingsdeck/internal/logger"
	"github.com/alexisbeaulieu97/settingsdeck/internal/markup"
	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
	deckerrors "github.com/alexisbeaulieu97/settingsdeck/pkg/errors"
)

const (
	// DefaultRows is the textarea height when an item leaves Rows at zero.
	DefaultRows = 5
	// DefaultButtonText labels buttons that set no ButtonText.
	DefaultButtonText = "按钮"
)

// Options configures a Renderer.
type Options struct {
	// Strict turns items of unknown kind into an *errors.UnknownKindError
	// instead of rendering them as nothing.
	Strict bool
	Logger *logger.Logger
}

// Renderer builds settings markup.
type Renderer struct {
	strict bool
	logger *logger.Logger
}

// New returns a Renderer configured by opts.
func New(opts Options) *Renderer {
	return &Renderer{
		strict: opts.Strict,
		logger: opts.Logger.With("component", "renderer"),
	}
}

// Render renders groups with a default, non-strict Renderer.
func Render(groups []settings.Group, active string, store settings.Store) (string, error) {
	return New(Options{}).Render(groups, active, store)
}

// Render produces the full panel: the tab list followed by every group's
// content region. Groups other than active are rendered hidden.
func (r *Renderer) Render(groups []settings.Group, active string, store settings.Store) (string, error) {
	tree, err := r.Tree(groups, active, store)
	if err != nil {
		return "", err
	}
	return markup.Render(tree)
}

// Tree builds the panel node tree without serializing it.
func (r *Renderer) Tree(groups []settings.Group, active string, store settings.Store) (*html.Node, error) {
	tabs := markup.El("ul", markup.Attrs(markup.Class(markup.TabBarClass)))
	wrap := markup.El("div", markup.Attrs(markup.Class(markup.ContentWrapClass)))

	for _, group := range groups {
		markup.Append(tabs, tabEntry(group, group.Name == active))

		content, err := r.groupContent(group, group.Name == active, store)
		if err != nil {
			return nil, err
		}
		markup.Append(wrap, content)
	}

	return markup.El("div", markup.Attrs(markup.Class(markup.PanelClass)), tabs, wrap), nil
}

func tabEntry(group settings.Group, active bool) *html.Node {
	return markup.El("li",
		markup.Attrs(
			markup.Class(markup.TabEntryClass, focusClass(active)),
			markup.Attr(markup.TabAttr, group.Name),
		),
		markup.El("span", markup.Attrs(markup.Class(markup.TabTextClass)), markup.Text(group.Label)),
	)
}

func (r *Renderer) groupContent(group settings.Group, active bool, store settings.Store) (*html.Node, error) {
	region := markup.El("div", markup.Attrs(
		markup.Class(markup.ContentClass, hiddenClass(!active)),
		markup.Attr(markup.ContentNameAttr, group.Name),
	))
	for _, item := range group.Items {
		node, err := r.ItemNode(item, store)
		if err != nil {
			return nil, err
		}
		markup.Append(region, node)
	}
	return region, nil
}

// Item renders a single item to markup. Items of unknown kind render to the
// empty string unless the renderer is strict.
func (r *Renderer) Item(item settings.Item, store settings.Store) (string, error) {
	node, err := r.ItemNode(item, store)
	if err != nil || node == nil {
		return "", err
	}
	return markup.Render(node)
}

// ItemNode builds the node for a single item, or nil for an unknown kind.
func (r *Renderer) ItemNode(item settings.Item, store settings.Store) (*html.Node, error) {
	if item.Kind == settings.KindHeader {
		return header(item), nil
	}

	control := r.control(item, store.Effective(item))
	if control == nil {
		if r.strict {
			return nil, &deckerrors.UnknownKindError{Key: item.Key, Kind: item.Kind.String()}
		}
		r.logger.Debug("skipping item of unknown kind", "key", item.Key, "kind", item.Kind.String())
		return nil, nil
	}

	label := markup.El("div", markup.Attrs(markup.Class(markup.LabelClass)), titleRow(item.Title))
	if item.Kind != settings.KindCheckbox && item.Description != "" {
		markup.Append(label, markup.El("div", markup.Attrs(markup.Class(markup.LabelTextClass)), markup.Text(item.Description)))
	}
	markup.Append(label, separator(), control)
	return label, nil
}

func (r *Renderer) control(item settings.Item, value settings.Value) *html.Node {
	switch item.Kind {
	case settings.KindText:
		return markup.El("div", markup.Attrs(markup.Class("fn__block")),
			markup.El("input", markup.Attrs(
				markup.Class("b3-text-field", "fn__block"),
				markup.Attr("id", markup.ControlID(item.Key)),
				markup.Attr("placeholder", item.Placeholder),
				markup.Attr("value", scalar(value)),
			)),
		)

	case settings.KindTextarea:
		rows := item.Rows
		if rows <= 0 {
			rows = DefaultRows
		}
		return markup.El("div", markup.Attrs(markup.Class("fn__block")),
			markup.El("textarea", markup.Attrs(
				markup.Class("b3-text-field", "fn__block"),
				markup.Attr("id", markup.ControlID(item.Key)),
				markup.Attr("placeholder", item.Placeholder),
				markup.Attr("rows", strconv.Itoa(rows)),
			), textOrNil(scalar(value))),
		)

	case settings.KindCheckbox:
		return markup.El("div", markup.Attrs(markup.Class("fn__flex")),
			markup.El("input", markup.Attrs(
				markup.Attr("type", "checkbox"),
				markup.Class("b3-switch"),
				markup.Attr("id", markup.ControlID(item.Key)),
				markup.When(settings.Truthy(value), markup.Flag("checked")),
			)),
			markup.El("span", markup.Attrs(markup.Class("fn__space"))),
			markup.El("span", nil, textOrNil(item.Description)),
		)

	case settings.KindSelect:
		selected := scalar(value)
		sel := markup.El("select", markup.Attrs(
			markup.Class("b3-select", "fn__block"),
			markup.Attr("id", markup.ControlID(item.Key)),
		))
		for _, opt := range item.Options {
			markup.Append(sel, markup.El("option", markup.Attrs(
				markup.Attr("value", opt.Value),
				markup.When(value != nil && opt.Value == selected, markup.Flag("selected")),
			), markup.Text(opt.Label)))
		}
		return markup.El("div", markup.Attrs(markup.Class("fn__block")), sel)

	case settings.KindButton:
		text := item.ButtonText
		if text == "" {
			text = DefaultButtonText
		}
		return markup.El("div", markup.Attrs(markup.Class("fn__block")),
			markup.El("button", markup.Attrs(
				markup.Class("b3-button", "b3-button--outline", "fn__flex-center", "fn__size200"),
				markup.Attr("id", markup.ControlID(item.Key)),
			), markup.Text(text)),
		)

	case settings.KindTextWithSwitch:
		composite := compositeOf(item, value)
		return markup.El("div", markup.Attrs(markup.Class("fn__flex", "fn__flex-center")),
			markup.El("input", markup.Attrs(
				markup.Class("b3-text-field", "fn__flex-1"),
				markup.Attr("id", markup.TextID(item.Key)),
				markup.Attr("placeholder", item.Placeholder),
				markup.Attr("value", composite.Text),
			)),
			markup.El("input", markup.Attrs(
				markup.Attr("type", "checkbox"),
				markup.Class("b3-switch"),
				markup.Attr("id", markup.SwitchID(item.Key)),
				markup.When(composite.Enabled, markup.Flag("checked")),
			)),
		)

	default:
		return nil
	}
}

func header(item settings.Item) *html.Node {
	n := markup.El("div", markup.Attrs(markup.Class(markup.LabelClass)), titleRow(item.Title))
	if item.Description != "" {
		markup.Append(n, markup.El("div", markup.Attrs(markup.Class(markup.LabelTextClass)), markup.Text(item.Description)))
	}
	markup.Append(n, separator())
	return n
}

func titleRow(title string) *html.Node {
	return markup.El("div", markup.Attrs(markup.Class("fn__flex", markup.LabelTextClass)),
		markup.El("div", markup.Attrs(markup.Class("fn__flex-1")), textOrNil(title)),
	)
}

func separator() *html.Node {
	return markup.El("div", markup.Attrs(markup.Class("fn__hr")))
}

// compositeOf resolves the value shown by a textWithSwitch item. Anything
// that is not a well-formed composite falls back to the item default.
func compositeOf(item settings.Item, value settings.Value) settings.Composite {
	if c, ok := settings.AsComposite(value); ok {
		return c
	}
	if c, ok := settings.AsComposite(item.Default); ok {
		return c
	}
	return settings.Composite{}
}

func scalar(v settings.Value) string {
	if v == nil {
		return ""
	}
	return v.Scalar()
}

func textOrNil(s string) *html.Node {
	if s == "" {
		return nil
	}
	return markup.Text(s)
}

func focusClass(on bool) string {
	if on {
		return markup.FocusClass
	}
	return ""
}

func hiddenClass(on bool) string {
	if on {
		return markup.HiddenClass
	}
	return ""
}
