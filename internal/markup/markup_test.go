package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEscapesTextAndAttributes(t *testing.T) {
	t.Parallel()

	n := El("div", Attrs(Attr("data-name", `"><script>`)), Text("<b>&</b>"))
	out, err := Render(n)
	require.NoError(t, err)
	assert.Equal(t, `<div data-name="&#34;&gt;&lt;script&gt;">&lt;b&gt;&amp;&lt;/b&gt;</div>`, out)
}

func TestElSkipsEmptyAttributesAndNilChildren(t *testing.T) {
	t.Parallel()

	n := El("input", Attrs(Attr("id", "x"), When(false, Flag("checked")), When(true, Flag("disabled"))), nil)
	out, err := Render(n)
	require.NoError(t, err)
	assert.Equal(t, `<input id="x" disabled=""/>`, out)
}

func TestClassDropsBlankNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b", Class("a", "", "  ", "b").Val)
}

func TestIdentifiers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "setting_callout_NOTE", ControlID("callout_NOTE"))
	assert.Equal(t, "setting_callout_NOTE_text", TextID("callout_NOTE"))
	assert.Equal(t, "setting_callout_NOTE_switch", SwitchID("callout_NOTE"))
}

func TestQueries(t *testing.T) {
	t.Parallel()

	root := El("ul", nil,
		El("li", Attrs(Class(TabEntryClass, FocusClass), Attr(TabAttr, "a")), Text("A")),
		El("li", Attrs(Class(TabEntryClass), Attr(TabAttr, "b"), Attr("id", "second")), Text("B")),
	)

	entries := FindAll(root, ByAttr(TabAttr))
	require.Len(t, entries, 2)
	assert.True(t, HasClass(entries[0], FocusClass))
	assert.False(t, HasClass(entries[1], FocusClass))

	second := Find(root, ByID("second"))
	require.NotNil(t, second)
	assert.Equal(t, "B", TextContent(second))
	assert.Len(t, FindAll(root, ByClass(TabEntryClass)), 2)
	assert.Nil(t, Find(root, ByID("missing")))
}
