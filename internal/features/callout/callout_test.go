package callout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/settingsdeck/internal/logger"
	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

func TestRegisterAddsCalloutGroup(t *testing.T) {
	t.Parallel()

	reg := settings.NewRegistry(logger.Nop())
	Register(reg)

	group, ok := reg.Group(TabName)
	require.True(t, ok)
	require.Len(t, group.Items, 1+len(Types))
	assert.Equal(t, settings.KindHeader, group.Items[0].Kind)

	note := group.Items[1]
	assert.Equal(t, "callout_NOTE", note.Key)
	assert.Equal(t, settings.KindTextWithSwitch, note.Kind)
	assert.Equal(t, settings.Composite{Text: "注意"}, note.Default)
	assert.Equal(t, "请输入 Note 的标题文本", note.Placeholder)
	assert.Empty(t, reg.Lint())
}

func TestGenerateCSSOnlyForEnabledTypes(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GenerateCSS(settings.NewStore()))

	store := settings.Store{
		"callout_NOTE": settings.Composite{Text: "笔记", Enabled: true},
		"callout_TIP":  settings.Composite{Text: "技巧", Enabled: false},
	}
	css := GenerateCSS(store)

	assert.Contains(t, css, `.callout[data-subtype="NOTE"] .callout-title::before {`)
	assert.Contains(t, css, `content: "笔记";`)
	assert.Contains(t, css, `color: var(--b3-callout-note);`)
	assert.Contains(t, css, `.hint--menu button[data-id="calloutNote"] .b3-list-item__text span::before {`)
	assert.NotContains(t, css, "TIP")
	assert.NotContains(t, css, "技巧")
}

func TestGenerateCSSFallsBackToDefaultTitle(t *testing.T) {
	t.Parallel()

	css := GenerateCSS(settings.Store{"callout_WARNING": settings.Composite{Enabled: true}})
	assert.Equal(t, 2, strings.Count(css, `content: "警告";`))
}

func TestGenerateCSSReadsLooseEntries(t *testing.T) {
	t.Parallel()

	store := settings.Store{
		"callout_CAUTION": settings.Unknown{Data: map[string]any{"switch": true}},
		"callout_TIP":     settings.Unknown{Data: "garbage"},
	}
	css := GenerateCSS(store)
	assert.Contains(t, css, `content: "谨慎";`)
	assert.NotContains(t, css, "calloutTip")
}

func TestGenerateCSSEscapesContent(t *testing.T) {
	t.Parallel()

	store := settings.Store{"callout_NOTE": settings.Composite{Text: "a\\b \"q\"\r\nnext", Enabled: true}}
	assert.Contains(t, GenerateCSS(store), `content: "a\\b \"q\" next";`)
}

func TestStyleElement(t *testing.T) {
	t.Parallel()

	out, err := StyleElement(settings.Store{"callout_TIP": settings.Composite{Text: "提示", Enabled: true}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<style id="snippetCSS-callout-title-styles">.callout[data-subtype="TIP"]`))
	assert.True(t, strings.HasSuffix(out, "</style>"))
}

func TestStyleElementKeepsTitleInsideStyle(t *testing.T) {
	t.Parallel()

	store := settings.Store{"callout_NOTE": settings.Composite{Text: "</style><script>alert(1)</script>", Enabled: true}}

	out, err := StyleElement(store)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "</style>"))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `content: "\3C /style\3E \3C script\3E alert(1)\3C /script\3E ";`)
}
