// Package markup builds settings markup as a node tree and defines the
// identifier and class contract shared by the renderer, the binder, the
// navigator and the host container.
//
// Trees are plain golang.org/x/net/html nodes. Serialization goes through
// html.Render, so text content and attribute values are always escaped and
// output is byte-identical for identical trees.
package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Class names and attributes the host stylesheet and the navigator rely on.
const (
	PanelClass         = "fn__flex-1 fn__flex config__panel"
	TabBarClass        = "b3-tab-bar b3-list b3-list--background"
	TabEntryClass      = "b3-list-item"
	TabTextClass       = "b3-list-item__text"
	FocusClass         = "b3-list-item--focus"
	ContentWrapClass   = "config__tab-wrap fn__flex-1"
	ContentClass       = "config__tab-container"
	HiddenClass        = "fn__none"
	LabelClass         = "b3-label"
	LabelTextClass     = "b3-label__text"
	TabAttr            = "data-tab"
	ContentNameAttr    = "data-name"
	controlIDPrefix    = "setting_"
	compositeTextTag   = "_text"
	compositeSwitchTag = "_switch"
)

// ControlID is the element id of the control bound to key.
func ControlID(key string) string {
	return controlIDPrefix + key
}

// TextID is the id of a composite item's text sub-control.
func TextID(key string) string {
	return controlIDPrefix + key + compositeTextTag
}

// SwitchID is the id of a composite item's switch sub-control.
func SwitchID(key string) string {
	return controlIDPrefix + key + compositeSwitchTag
}

// Attr builds an attribute.
func Attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// Flag builds a boolean attribute such as checked or selected.
func Flag(key string) html.Attribute {
	return html.Attribute{Key: key}
}

// Class joins the non-empty names into a class attribute.
func Class(names ...string) html.Attribute {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			parts = append(parts, name)
		}
	}
	return html.Attribute{Key: "class", Val: strings.Join(parts, " ")}
}

// When returns attr if cond holds, otherwise an attribute El drops.
func When(cond bool, attr html.Attribute) html.Attribute {
	if !cond {
		return html.Attribute{}
	}
	return attr
}

// El builds an element node. Attributes with an empty key and nil children are skipped.
func El(tag string, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range attrs {
		if a.Key == "" {
			continue
		}
		n.Attr = append(n.Attr, a)
	}
	Append(n, children...)
	return n
}

// Attrs is shorthand for an attribute list.
func Attrs(attrs ...html.Attribute) []html.Attribute {
	return attrs
}

// Text builds a text node. The value is escaped on render.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Append adds the non-nil children to parent.
func Append(parent *html.Node, children ...*html.Node) {
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.Parent != nil {
			child.Parent.RemoveChild(child)
		}
		parent.AppendChild(child)
	}
}

// Render serializes nodes in order, skipping nil entries.
func Render(nodes ...*html.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// GetAttr returns the value of key on n.
func GetAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether n carries class name.
func HasClass(n *html.Node, name string) bool {
	classes, _ := GetAttr(n, "class")
	for _, c := range strings.Fields(classes) {
		if c == name {
			return true
		}
	}
	return false
}

// Find returns the first node in n's subtree, n included, matching pred.
func Find(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node in n's subtree matching pred, in document order.
func FindAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if pred(node) {
			out = append(out, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// ByID matches elements whose id attribute equals id.
func ByID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := GetAttr(n, "id")
		return ok && v == id
	}
}

// ByClass matches elements carrying class name.
func ByClass(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, name)
	}
}

// ByAttr matches elements carrying attribute key.
func ByAttr(key string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		_, ok := GetAttr(n, key)
		return ok
	}
}

// TextContent concatenates the text nodes under n.
func TextContent(n *html.Node) string {
	var b strings.Builder
	for _, t := range FindAll(n, func(x *html.Node) bool { return x.Type == html.TextNode }) {
		b.WriteString(t.Data)
	}
	return b.String()
}
