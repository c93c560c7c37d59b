// Package dom is a small in-process stand-in for the host's document: it
// holds parsed markup, answers id and attribute queries, and dispatches
// events to listeners attached to elements. Replacing the markup drops every
// node and with them every listener.
package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alexisbeaulieu97/settingsdeck/internal/markup"
)

// Event types dispatched by the container.
const (
	EventInput  = "input"
	EventChange = "change"
	EventClick  = "click"
)

// Event is delivered to listeners.
type Event struct {
	Type   string
	Target *Element
}

// Listener handles one event.
type Listener func(Event)

// Container is the element rendered settings markup is injected into.
type Container struct {
	root      *html.Node
	listeners map[*html.Node]map[string][]Listener
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{
		root:      &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div},
		listeners: make(map[*html.Node]map[string][]Listener),
	}
}

// SetInnerHTML parses markup and replaces the container's content. All
// previously attached listeners are discarded together with their nodes.
func (c *Container) SetInnerHTML(markupText string) error {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markupText), context)
	if err != nil {
		return fmt.Errorf("parse container markup: %w", err)
	}

	for child := c.root.FirstChild; child != nil; {
		next := child.NextSibling
		c.root.RemoveChild(child)
		child = next
	}
	for _, n := range nodes {
		c.root.AppendChild(n)
	}
	c.listeners = make(map[*html.Node]map[string][]Listener)
	return nil
}

// InnerHTML serializes the current content, reflecting any state changes
// made through elements.
func (c *Container) InnerHTML() string {
	out, err := markup.Render(childrenOf(c.root)...)
	if err != nil {
		return ""
	}
	return out
}

// Root returns the container node.
func (c *Container) Root() *html.Node {
	return c.root
}

// ByID returns the element with the given id.
func (c *Container) ByID(id string) (*Element, bool) {
	n := markup.Find(c.root, markup.ByID(id))
	if n == nil || n == c.root {
		return nil, false
	}
	return &Element{node: n, owner: c}, true
}

// QueryAll returns the elements matching pred in document order.
func (c *Container) QueryAll(pred func(*html.Node) bool) []*Element {
	var out []*Element
	for child := c.root.FirstChild; child != nil; child = child.NextSibling {
		for _, n := range markup.FindAll(child, pred) {
			out = append(out, &Element{node: n, owner: c})
		}
	}
	return out
}

// AddEventListener attaches fn to el for events of type typ.
func (c *Container) AddEventListener(el *Element, typ string, fn Listener) {
	if el == nil || fn == nil {
		return
	}
	byType := c.listeners[el.node]
	if byType == nil {
		byType = make(map[string][]Listener)
		c.listeners[el.node] = byType
	}
	byType[typ] = append(byType[typ], fn)
}

// ListenerCount returns the number of listeners attached across all elements.
func (c *Container) ListenerCount() int {
	total := 0
	for _, byType := range c.listeners {
		for _, fns := range byType {
			total += len(fns)
		}
	}
	return total
}

// Dispatch delivers an event of type typ to el's listeners in attachment order.
// It returns the number of listeners invoked.
func (c *Container) Dispatch(el *Element, typ string) int {
	if el == nil {
		return 0
	}
	fns := append([]Listener(nil), c.listeners[el.node][typ]...)
	for _, fn := range fns {
		fn(Event{Type: typ, Target: el})
	}
	return len(fns)
}

func childrenOf(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}
