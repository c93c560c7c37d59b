package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGroups() []Group {
	return []Group{
		{Name: "A", Items: []Item{
			{Key: "hdr", Kind: KindHeader},
			{Key: "name", Kind: KindText, Default: Text("anon")},
			{Key: "bio", Kind: KindTextarea},
			{Key: "dark", Kind: KindCheckbox, Default: Bool(false)},
			{Key: "mode", Kind: KindSelect, Default: Choice("a")},
			{Key: "note", Kind: KindTextWithSwitch, Default: Composite{Text: "注意", Enabled: false}},
			{Key: "wipe", Kind: KindButton},
		}},
	}
}

func TestEffectivePrefersStoredValue(t *testing.T) {
	t.Parallel()

	item := Item{Key: "name", Kind: KindText, Default: Text("anon")}

	store := NewStore()
	assert.Equal(t, Text("anon"), store.Effective(item))

	store.Set("name", Text(""))
	assert.Equal(t, Text(""), store.Effective(item), "an empty stored string is still a stored value")

	var nilStore Store
	assert.Equal(t, Text("anon"), nilStore.Effective(item))
}

func TestDecodeStoreTypesByKind(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"name":   "Ada",
		"bio":    "line1\nline2",
		"dark":   true,
		"mode":   "b",
		"note":   map[string]any{"text": "提示", "switch": true},
		"legacy": 42.0,
	}

	store := DecodeStore(raw, sampleGroups())

	assert.Equal(t, Text("Ada"), store["name"])
	assert.Equal(t, Text("line1\nline2"), store["bio"])
	assert.Equal(t, Bool(true), store["dark"])
	assert.Equal(t, Choice("b"), store["mode"])
	assert.Equal(t, Composite{Text: "提示", Enabled: true}, store["note"])
	assert.Equal(t, Unknown{Data: 42.0}, store["legacy"])
}

func TestDecodeStoreKeepsMalformedComposites(t *testing.T) {
	t.Parallel()

	cases := map[string]any{
		"missing switch": map[string]any{"text": "x"},
		"missing text":   map[string]any{"switch": true},
		"not an object":  "x",
		"wrong types":    map[string]any{"text": 1.0, "switch": "yes"},
	}

	for name, raw := range cases {
		raw := raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			store := DecodeStore(map[string]any{"note": raw}, sampleGroups())
			_, ok := AsComposite(store["note"])
			assert.False(t, ok)
			assert.Equal(t, Unknown{Data: raw}, store["note"])
		})
	}
}

func TestDecodeStoreAcceptsYAMLMaps(t *testing.T) {
	t.Parallel()

	raw := map[string]any{"note": map[any]any{"text": "t", "switch": false}}
	store := DecodeStore(raw, sampleGroups())
	assert.Equal(t, Composite{Text: "t"}, store["note"])
}

func TestEncodeRoundTripsThroughDecode(t *testing.T) {
	t.Parallel()

	store := Store{
		"name":  Text("<b>Ada</b>"),
		"dark":  Bool(true),
		"mode":  Choice("b"),
		"note":  Composite{Text: "警告", Enabled: true},
		"extra": Unknown{Data: []any{"kept"}},
	}

	encoded := store.Encode()
	assert.Equal(t, map[string]any{"text": "警告", "switch": true}, encoded["note"])

	decoded := DecodeStore(encoded, sampleGroups())
	require.Equal(t, store, decoded)
}

func TestDefaultStoreSkipsValuelessItems(t *testing.T) {
	t.Parallel()

	store := DefaultStore(sampleGroups())
	assert.Equal(t, []string{"dark", "mode", "name", "note"}, store.Keys())
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	store := Store{"name": Text("a")}
	clone := store.Clone()
	clone.Set("name", Text("b"))

	assert.Equal(t, Text("a"), store["name"])
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	assert.True(t, Truthy(Bool(true)))
	assert.True(t, Truthy(Composite{Enabled: true}))
	assert.True(t, Truthy(Unknown{Data: true}))
	assert.False(t, Truthy(Text("true")))
	assert.False(t, Truthy(nil))
}

func TestEffectiveIgnoresMisfitDefault(t *testing.T) {
	t.Parallel()

	checkbox := Item{Key: "dark", Kind: KindCheckbox, Default: Text("true")}
	store := NewStore()
	assert.Nil(t, store.Effective(checkbox))
	assert.False(t, Truthy(store.Effective(checkbox)))

	store.Set("dark", Bool(true))
	assert.Equal(t, Bool(true), store.Effective(checkbox))

	groups := []Group{{Name: "A", Items: []Item{checkbox, {Key: "mode", Kind: KindSelect, Default: Composite{Text: "x"}}}}}
	assert.Empty(t, DefaultStore(groups))
}
