package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/settingsdeck/internal/dom"
	"github.com/alexisbeaulieu97/settingsdeck/internal/markup"
	"github.com/alexisbeaulieu97/settingsdeck/internal/render"
	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

func mounted(t *testing.T, active string) *dom.Container {
	t.Helper()
	groups := []settings.Group{
		{Name: "基础设置", Label: "基础", Items: []settings.Item{{Key: "a", Kind: settings.KindText}}},
		{Name: "高级设置", Label: "高级", Items: []settings.Item{{Key: "b", Kind: settings.KindCheckbox}}},
	}
	out, err := render.Render(groups, active, settings.NewStore())
	require.NoError(t, err)
	c := dom.NewContainer()
	require.NoError(t, c.SetInnerHTML(out))
	return c
}

func region(t *testing.T, c *dom.Container, name string) *dom.Element {
	t.Helper()
	for _, el := range c.QueryAll(markup.ByClass(markup.ContentClass)) {
		if v, _ := el.Attr(markup.ContentNameAttr); v == name {
			return el
		}
	}
	t.Fatalf("no region %q", name)
	return nil
}

func focused(c *dom.Container) []string {
	var names []string
	for _, el := range c.QueryAll(markup.ByClass(markup.FocusClass)) {
		v, _ := el.Attr(markup.TabAttr)
		names = append(names, v)
	}
	return names
}

func TestActivateSwitchesVisibleGroup(t *testing.T) {
	t.Parallel()

	c := mounted(t, "")
	var notified []string
	n := New(c, func(name string) { notified = append(notified, name) })
	assert.Equal(t, "", n.Active())

	require.NoError(t, n.Activate("基础设置"))
	require.NoError(t, n.Activate("高级设置"))

	assert.True(t, region(t, c, "基础设置").HasClass(markup.HiddenClass))
	assert.False(t, region(t, c, "高级设置").HasClass(markup.HiddenClass))
	assert.Equal(t, []string{"高级设置"}, focused(c))
	assert.Equal(t, "高级设置", n.Active())
	assert.Equal(t, []string{"基础设置", "高级设置"}, notified)
}

func TestActivateUnknownGroupKeepsState(t *testing.T) {
	t.Parallel()

	c := mounted(t, "基础设置")
	n := New(c, nil)
	n.Restore("基础设置")

	assert.Error(t, n.Activate("关于"))
	assert.Equal(t, "基础设置", n.Active())
	assert.Equal(t, []string{"基础设置"}, focused(c))
}

func TestBindActivatesOnTabClick(t *testing.T) {
	t.Parallel()

	c := mounted(t, "基础设置")
	var last string
	n := New(c, func(name string) { last = name })
	assert.Equal(t, 2, n.Bind())

	require.NoError(t, c.ClickTab("高级设置"))
	assert.Equal(t, "高级设置", last)
	assert.Equal(t, "高级设置", n.Active())
	assert.True(t, region(t, c, "基础设置").HasClass(markup.HiddenClass))
}
