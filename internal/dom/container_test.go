package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMarkup = `<ul><li class="b3-list-item" data-tab="A">A</li><li class="b3-list-item" data-tab="B">B</li></ul>` +
	`<input id="name" value="a &amp; b"/>` +
	`<textarea id="bio">hello</textarea>` +
	`<input type="checkbox" id="dark"/>` +
	`<select id="mode"><option value="x">X</option><option value="y" selected="">Y</option></select>` +
	`<button id="wipe">wipe</button>`

func newSample(t *testing.T) *Container {
	t.Helper()
	c := NewContainer()
	require.NoError(t, c.SetInnerHTML(sampleMarkup))
	return c
}

func TestElementValues(t *testing.T) {
	t.Parallel()

	c := newSample(t)

	name, ok := c.ByID("name")
	require.True(t, ok)
	assert.Equal(t, "a & b", name.Value(), "attribute values are unescaped on parse")

	bio, _ := c.ByID("bio")
	assert.Equal(t, "hello", bio.Value())

	mode, _ := c.ByID("mode")
	assert.Equal(t, "y", mode.Value())
	assert.Equal(t, []string{"x", "y"}, mode.Options())

	dark, _ := c.ByID("dark")
	assert.False(t, dark.Checked())

	_, ok = c.ByID("missing")
	assert.False(t, ok)
}

func TestInteractionHelpersUpdateStateAndDispatch(t *testing.T) {
	t.Parallel()

	c := newSample(t)
	var seen []string
	record := func(e Event) { seen = append(seen, e.Type+":"+e.Target.ID()+"="+e.Target.Value()) }

	for _, id := range []string{"name", "bio"} {
		el, _ := c.ByID(id)
		c.AddEventListener(el, EventInput, record)
	}
	mode, _ := c.ByID("mode")
	c.AddEventListener(mode, EventChange, record)
	dark, _ := c.ByID("dark")
	c.AddEventListener(dark, EventChange, func(e Event) {
		if e.Target.Checked() {
			seen = append(seen, "checked")
		}
	})

	require.NoError(t, c.Input("name", "<b>"))
	require.NoError(t, c.Input("bio", "multi\nline"))
	require.NoError(t, c.Choose("mode", "x"))
	require.NoError(t, c.Check("dark", true))

	assert.Equal(t, []string{"input:name=<b>", "input:bio=multi\nline", "change:mode=x", "checked"}, seen)
	assert.Error(t, c.Choose("mode", "nope"))
	assert.Error(t, c.Input("missing", "x"))
}

func TestSetInnerHTMLDropsListeners(t *testing.T) {
	t.Parallel()

	c := newSample(t)
	calls := 0
	wipe, _ := c.ByID("wipe")
	c.AddEventListener(wipe, EventClick, func(Event) { calls++ })
	require.Equal(t, 1, c.ListenerCount())

	require.NoError(t, c.Click("wipe"))
	require.NoError(t, c.SetInnerHTML(sampleMarkup))
	assert.Equal(t, 0, c.ListenerCount())

	require.NoError(t, c.Click("wipe"))
	assert.Equal(t, 1, calls)
}

func TestClassManipulation(t *testing.T) {
	t.Parallel()

	c := newSample(t)
	require.NoError(t, c.ClickTab("B"))
	assert.Error(t, c.ClickTab("Z"))

	wipe, _ := c.ByID("wipe")
	wipe.AddClass("focus")
	wipe.AddClass("focus")
	assert.True(t, wipe.HasClass("focus"))
	wipe.ToggleClass("focus", false)
	assert.False(t, wipe.HasClass("focus"))
}

func TestInnerHTMLReflectsState(t *testing.T) {
	t.Parallel()

	c := newSample(t)
	require.NoError(t, c.Check("dark", true))
	assert.Contains(t, c.InnerHTML(), `<input type="checkbox" id="dark" checked=""/>`)
}
