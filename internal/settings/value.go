package settings

import (
	"strconv"
)

// Value is the tagged union of everything a Store can hold. The concrete
// variants are Text, Bool, Choice, Composite and Unknown; no other package
// can add one.
type Value interface {
	// Encode returns the loosely-typed representation written by persistence backends.
	Encode() any
	// Scalar returns the value as a control string, used for option matching.
	Scalar() string

	sealed()
}

// Text is the value of text and textarea items.
type Text string

// Bool is the value of checkbox items.
type Bool bool

// Choice is the value of select items; it matches one of the item's Option values.
type Choice string

// Composite is the value of textWithSwitch items: free text paired with a toggle.
type Composite struct {
	Text    string
	Enabled bool
}

// Unknown holds a persisted entry whose shape did not match its item, or whose
// key no registered item declares. It is kept so data round-trips untouched.
type Unknown struct {
	Data any
}

func (v Text) Encode() any      { return string(v) }
func (v Bool) Encode() any      { return bool(v) }
func (v Choice) Encode() any    { return string(v) }
func (v Unknown) Encode() any   { return v.Data }
func (v Text) Scalar() string   { return string(v) }
func (v Bool) Scalar() string   { return strconv.FormatBool(bool(v)) }
func (v Choice) Scalar() string { return string(v) }

// Encode uses the storage layout {"text": ..., "switch": ...}.
func (v Composite) Encode() any {
	return map[string]any{
		compositeTextField:   v.Text,
		compositeSwitchField: v.Enabled,
	}
}

func (v Composite) Scalar() string { return v.Text }

func (v Unknown) Scalar() string {
	switch data := v.Data.(type) {
	case string:
		return data
	case bool:
		return strconv.FormatBool(data)
	case float64:
		return strconv.FormatFloat(data, 'f', -1, 64)
	case int:
		return strconv.Itoa(data)
	default:
		return ""
	}
}

func (Text) sealed()      {}
func (Bool) sealed()      {}
func (Choice) sealed()    {}
func (Composite) sealed() {}
func (Unknown) sealed()   {}

const (
	compositeTextField   = "text"
	compositeSwitchField = "switch"
)

// Truthy reports whether v counts as checked for a toggle control.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Bool:
		return bool(val)
	case Composite:
		return val.Enabled
	case Unknown:
		b, ok := val.Data.(bool)
		return ok && b
	default:
		return false
	}
}

// AsComposite returns v as a Composite when it has that exact shape.
func AsComposite(v Value) (Composite, bool) {
	c, ok := v.(Composite)
	return c, ok
}

// decodeValue converts a persisted value into the variant expected by kind.
// Shape mismatches come back as Unknown.
func decodeValue(kind Kind, raw any) Value {
	switch kind {
	case KindText, KindTextarea:
		if s, ok := raw.(string); ok {
			return Text(s)
		}
	case KindSelect:
		switch s := raw.(type) {
		case string:
			return Choice(s)
		case bool, float64, int:
			return Choice(Unknown{Data: s}.Scalar())
		}
	case KindCheckbox:
		if b, ok := raw.(bool); ok {
			return Bool(b)
		}
	case KindTextWithSwitch:
		if c, ok := decodeComposite(raw); ok {
			return c
		}
	}
	return Unknown{Data: raw}
}

func decodeComposite(raw any) (Composite, bool) {
	var fields map[string]any
	switch m := raw.(type) {
	case map[string]any:
		fields = m
	case map[any]any:
		fields = make(map[string]any, len(m))
		for k, v := range m {
			if ks, ok := k.(string); ok {
				fields[ks] = v
			}
		}
	default:
		return Composite{}, false
	}

	text, hasText := fields[compositeTextField]
	enabled, hasSwitch := fields[compositeSwitchField]
	if !hasText || !hasSwitch {
		return Composite{}, false
	}
	ts, ok := text.(string)
	if !ok {
		return Composite{}, false
	}
	eb, ok := enabled.(bool)
	if !ok {
		return Composite{}, false
	}
	return Composite{Text: ts, Enabled: eb}, true
}
