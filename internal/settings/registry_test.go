package settings

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/settingsdeck/internal/logger"
)

func TestRegistryPreservesRegistrationOrder(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	reg.RegisterGroup(Group{Name: "基础设置", Label: "基础"})
	reg.RegisterGroup(Group{Name: "高级设置", Label: "高级"})
	reg.RegisterGroup(Group{Name: "关于", Label: "关于"})

	for i := 0; i < 3; i++ {
		require.Equal(t, []string{"基础设置", "高级设置", "关于"}, reg.Names())
	}
	assert.Equal(t, 3, reg.Len())
}

func TestRegistryAcceptsDuplicatesSilently(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	reg.RegisterGroup(Group{Name: "A", Items: []Item{{Key: "x", Kind: KindText}}})
	reg.RegisterGroup(Group{Name: "A", Items: []Item{{Key: "x", Kind: KindCheckbox}}})

	groups := reg.Groups()
	require.Len(t, groups, 2)

	item, ok := reg.Item("x")
	require.True(t, ok)
	assert.Equal(t, KindText, item.Kind, "first registration wins lookups")
}

func TestRegistryGroupsAppendDoesNotLeak(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	reg.RegisterGroup(Group{Name: "A"})

	groups := reg.Groups()
	_ = append(groups, Group{Name: "intruder"})
	reg.RegisterGroup(Group{Name: "B"})

	assert.Equal(t, []string{"A", "B"}, reg.Names())
}

func TestRegistryGroupLookup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	reg.RegisterGroup(Group{Name: "A", Label: "Alpha"})

	g, ok := reg.Group("A")
	require.True(t, ok)
	assert.Equal(t, "Alpha", g.Label)

	_, ok = reg.Group("missing")
	assert.False(t, ok)
}

func TestRegistryConcurrentRegistration(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg.RegisterGroup(Group{Name: fmt.Sprintf("g%d", i)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, reg.Len())
}

func TestLintReportsRegistrationProblems(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	reg.RegisterGroup(Group{Name: "A", Items: []Item{
		{Key: "x", Kind: KindText, Default: Text("a")},
		{Key: "has space", Kind: KindText},
		{Key: "y", Kind: Kind("slider")},
		{Key: "z", Kind: KindCheckbox, Default: Text("nope")},
	}})
	reg.RegisterGroup(Group{Name: "A", Items: []Item{
		{Key: "x", Kind: KindCheckbox},
		{Key: "hdr", Kind: KindHeader},
	}})

	issues := reg.Lint()
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, issue.Error())
	}

	assert.Contains(t, messages, "validation error: groups[0].items[1].key: failed validation for tag 'control_key'")
	assert.Contains(t, messages, "validation error: groups[0].items[2].kind: failed validation for tag 'item_kind'")
	assert.Contains(t, messages, "validation error: groups[0].items[3].default: default settings.Text does not fit kind checkbox")
	assert.Contains(t, messages, `validation error: groups[1].name: duplicate group name "A" (first at groups[0])`)
	assert.Contains(t, messages, `validation error: groups[1].items[0].key: duplicate key "x" (also in group "A")`)
	assert.Len(t, issues, 5)
}

func TestLintCleanRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	reg.RegisterGroup(Group{Name: "A", Items: []Item{
		{Key: "hdr", Kind: KindHeader, Title: "Header"},
		{Key: "mode", Kind: KindSelect, Default: Choice("b"), Options: []Option{{Label: "A", Value: "a"}, {Label: "B", Value: "b"}}},
		{Key: "note", Kind: KindTextWithSwitch, Default: Composite{Text: "注意"}},
	}})

	assert.Empty(t, reg.Lint())
}

func TestRegisterGroupWarnsAboutMisfitDefaults(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log, err := logger.New(logger.Options{Level: "warn", Writer: &logs})
	require.NoError(t, err)

	reg := NewRegistry(log)
	reg.RegisterGroup(Group{Name: "A", Items: []Item{
		{Key: "dark", Kind: KindCheckbox, Default: Text("true")},
		{Key: "name", Kind: KindText, Default: Text("anon")},
	}})

	assert.Equal(t, 1, reg.Len(), "a misfit default never blocks registration")
	assert.Contains(t, logs.String(), "default does not fit item kind")
	assert.Contains(t, logs.String(), `"key":"dark"`)
	assert.NotContains(t, logs.String(), `"key":"name"`)
}
