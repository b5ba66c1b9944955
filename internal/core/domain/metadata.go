package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MetaKind identifies the type a MetaValue holds.
type MetaKind int

// Metadata value kinds.
const (
	// MetaString holds a text value.
	MetaString MetaKind = iota

	// MetaNumber holds a numeric value (JSON numbers are float64).
	MetaNumber

	// MetaBool holds a boolean value.
	MetaBool

	// MetaMap holds a nested metadata map.
	MetaMap
)

// String returns the kind name.
func (k MetaKind) String() string {
	switch k {
	case MetaString:
		return "string"
	case MetaNumber:
		return "number"
	case MetaBool:
		return "bool"
	case MetaMap:
		return "map"
	default:
		return "unknown"
	}
}

// MetaValue is one typed metadata value: a string, a number, a bool, or a
// nested map. The explicit tagging preserves serialization fidelity that an
// untyped map would lose across language boundaries. JSON arrays and nulls
// are not part of the value universe and fail to decode.
type MetaValue struct {
	kind MetaKind
	str  string
	num  float64
	b    bool
	m    Metadata
}

// StringValue wraps a text value.
func StringValue(s string) MetaValue {
	return MetaValue{kind: MetaString, str: s}
}

// NumberValue wraps a numeric value.
func NumberValue(n float64) MetaValue {
	return MetaValue{kind: MetaNumber, num: n}
}

// BoolValue wraps a boolean value.
func BoolValue(b bool) MetaValue {
	return MetaValue{kind: MetaBool, b: b}
}

// MapValue wraps a nested metadata map. A nil map becomes empty.
func MapValue(m Metadata) MetaValue {
	if m == nil {
		m = Metadata{}
	}
	return MetaValue{kind: MetaMap, m: m}
}

// Kind returns which type this value holds.
func (v MetaValue) Kind() MetaKind {
	return v.kind
}

// Str returns the text value. Zero value for other kinds.
func (v MetaValue) Str() string {
	return v.str
}

// Num returns the numeric value. Zero value for other kinds.
func (v MetaValue) Num() float64 {
	return v.num
}

// Bool returns the boolean value. Zero value for other kinds.
func (v MetaValue) Bool() bool {
	return v.b
}

// Map returns the nested map. Nil for other kinds.
func (v MetaValue) Map() Metadata {
	return v.m
}

// MarshalJSON writes the underlying value without a type wrapper.
func (v MetaValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case MetaString:
		return json.Marshal(v.str)
	case MetaNumber:
		return json.Marshal(v.num)
	case MetaBool:
		return json.Marshal(v.b)
	case MetaMap:
		return json.Marshal(v.m)
	default:
		return nil, fmt.Errorf("marshal metadata value: unknown kind %d", v.kind)
	}
}

// UnmarshalJSON probes the JSON token type and rejects anything outside the
// string/number/bool/nested-map universe.
func (v *MetaValue) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty metadata value", ErrInvalidDraft)
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode metadata string: %w", err)
		}
		*v = StringValue(s)
		return nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("decode metadata bool: %w", err)
		}
		*v = BoolValue(b)
		return nil

	case '{':
		var m Metadata
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*v = MapValue(m)
		return nil

	case '[':
		return fmt.Errorf("%w: metadata arrays are not supported", ErrInvalidDraft)

	case 'n':
		return fmt.Errorf("%w: metadata values cannot be null", ErrInvalidDraft)

	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("%w: metadata value must be a string, number, bool, or map", ErrInvalidDraft)
		}
		*v = NumberValue(n)
		return nil
	}
}

// plain unwraps the value into its untyped JSON-ready form.
func (v MetaValue) plain() any {
	switch v.kind {
	case MetaString:
		return v.str
	case MetaNumber:
		return v.num
	case MetaBool:
		return v.b
	case MetaMap:
		return v.m.Plain()
	default:
		return nil
	}
}

// Metadata is an open-ended map of typed values keyed by string.
type Metadata map[string]MetaValue

// Plain converts the metadata into untyped scalars and maps, for callers
// that hand values to reflection-based encoders.
func (m Metadata) Plain() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.plain()
	}
	return out
}

// MetadataFromPlain converts untyped JSON-decoded values into Metadata,
// rejecting arrays and nulls the same way the JSON decoder does.
func MetadataFromPlain(values map[string]any) (Metadata, error) {
	out := make(Metadata, len(values))
	for k, v := range values {
		mv, err := metaValueFromPlain(v)
		if err != nil {
			return nil, fmt.Errorf("metadata key %q: %w", k, err)
		}
		out[k] = mv
	}
	return out, nil
}

func metaValueFromPlain(v any) (MetaValue, error) {
	switch val := v.(type) {
	case string:
		return StringValue(val), nil
	case float64:
		return NumberValue(val), nil
	case int:
		return NumberValue(float64(val)), nil
	case bool:
		return BoolValue(val), nil
	case map[string]any:
		m, err := MetadataFromPlain(val)
		if err != nil {
			return MetaValue{}, err
		}
		return MapValue(m), nil
	case nil:
		return MetaValue{}, fmt.Errorf("%w: metadata values cannot be null", ErrInvalidDraft)
	default:
		return MetaValue{}, fmt.Errorf("%w: metadata value must be a string, number, bool, or map", ErrInvalidDraft)
	}
}

// Clone returns a deep copy of the metadata map.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return Metadata{}
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		if v.kind == MetaMap {
			v.m = v.m.Clone()
		}
		out[k] = v
	}
	return out
}
