package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alexisbeaulieu97/settingsdeck/internal/markup"
)

// Element is a handle on one node of a container.
type Element struct {
	node  *html.Node
	owner *Container
}

// Tag returns the element name.
func (e *Element) Tag() string {
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	id, _ := markup.GetAttr(e.node, "id")
	return id
}

// Attr returns the value of attribute key.
func (e *Element) Attr(key string) (string, bool) {
	return markup.GetAttr(e.node, key)
}

// SetAttr sets or replaces attribute key.
func (e *Element) SetAttr(key, val string) {
	for i, a := range e.node.Attr {
		if a.Key == key {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute key.
func (e *Element) RemoveAttr(key string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	e.node.Attr = attrs
}

// HasAttr reports whether attribute key is present.
func (e *Element) HasAttr(key string) bool {
	_, ok := markup.GetAttr(e.node, key)
	return ok
}

// HasClass reports whether the element carries class name.
func (e *Element) HasClass(name string) bool {
	return markup.HasClass(e.node, name)
}

// AddClass adds name to the class list if absent.
func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	classes, _ := e.Attr("class")
	e.SetAttr("class", strings.TrimSpace(classes+" "+name))
}

// RemoveClass removes every occurrence of name from the class list.
func (e *Element) RemoveClass(name string) {
	classes, ok := e.Attr("class")
	if !ok {
		return
	}
	kept := make([]string, 0)
	for _, c := range strings.Fields(classes) {
		if c != name {
			kept = append(kept, c)
		}
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

// ToggleClass adds name when on is true and removes it otherwise.
func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
		return
	}
	e.RemoveClass(name)
}

// Text returns the element's text content.
func (e *Element) Text() string {
	return markup.TextContent(e.node)
}

// Value returns the control value: the value attribute of inputs, the content
// of textareas, or the value of the selected option of selects.
func (e *Element) Value() string {
	switch e.node.DataAtom {
	case atom.Textarea:
		return e.Text()
	case atom.Select:
		options := markup.FindAll(e.node, isOption)
		for _, opt := range options {
			if _, selected := markup.GetAttr(opt, "selected"); selected {
				return optionValue(opt)
			}
		}
		if len(options) > 0 {
			return optionValue(options[0])
		}
		return ""
	default:
		v, _ := e.Attr("value")
		return v
	}
}

// SetValue updates the control value the way a user edit would.
func (e *Element) SetValue(v string) {
	switch e.node.DataAtom {
	case atom.Textarea:
		for c := e.node.FirstChild; c != nil; {
			next := c.NextSibling
			e.node.RemoveChild(c)
			c = next
		}
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: v})
	case atom.Select:
		for _, opt := range markup.FindAll(e.node, isOption) {
			o := &Element{node: opt, owner: e.owner}
			if optionValue(opt) == v {
				o.SetAttr("selected", "")
			} else {
				o.RemoveAttr("selected")
			}
		}
	default:
		e.SetAttr("value", v)
	}
}

// Checked reports the checked state of a checkbox.
func (e *Element) Checked() bool {
	return e.HasAttr("checked")
}

// SetChecked sets the checked state of a checkbox.
func (e *Element) SetChecked(on bool) {
	if on {
		if !e.Checked() {
			e.SetAttr("checked", "")
		}
		return
	}
	e.RemoveAttr("checked")
}

// Options returns the values of a select's options in order.
func (e *Element) Options() []string {
	var values []string
	for _, opt := range markup.FindAll(e.node, isOption) {
		values = append(values, optionValue(opt))
	}
	return values
}

func isOption(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Option
}

func optionValue(n *html.Node) string {
	if v, ok := markup.GetAttr(n, "value"); ok {
		return v
	}
	return markup.TextContent(n)
}
