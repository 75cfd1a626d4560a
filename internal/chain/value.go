package chain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"math"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is a payload scalar: a string, an integer, a float, or a bool.
// Nested structures are not representable, which keeps the canonical
// encoding of a payload unambiguous.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

func String(s string) Value { return Value{kind: KindString, s: s} }
func Int(i int64) Value     { return Value{kind: KindInt, i: i} }
func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }

// Float stores negative zero as zero: "-0" reads back as Int(0), so keeping
// the sign would make the stored hash unreproducible.
func Float(f float64) Value {
	if f == 0 {
		f = 0
	}
	return Value{kind: KindFloat, f: f}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }
func (v Value) AsInt() (int64, bool)     { return v.i, v.kind == KindInt }
func (v Value) AsBool() (bool, bool)     { return v.b, v.kind == KindBool }

// AsFloat returns the numeric value of an int or float variant.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// Interface returns the value as a plain Go value, nil for an invalid Value.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	}
	return nil
}

func (v Value) validate() error {
	switch v.kind {
	case KindString, KindInt, KindBool:
		return nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return fmt.Errorf("%w: non-finite float %v", ErrInvalidPayload, v.f)
		}
		return nil
	}
	return fmt.Errorf("%w: uninitialized value", ErrInvalidPayload)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if err := v.validate(); err != nil {
		return nil, err
	}
	return marshalCompact(v.Interface())
}

// UnmarshalJSON accepts JSON strings, numbers and booleans. Numbers without a
// fractional part or exponent that fit in int64 decode as Int.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	switch t := tok.(type) {
	case string:
		*v = String(t)
	case bool:
		*v = Bool(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			*v = Int(i)
			return nil
		}
		f, err := t.Float64()
		if err != nil {
			return fmt.Errorf("%w: number %s: %v", ErrInvalidPayload, t, err)
		}
		*v = Float(f)
	default:
		return fmt.Errorf("%w: unsupported JSON value %s", ErrInvalidPayload, data)
	}
	return nil
}

// Payload is the application-supplied body of an entry. It is opaque to the
// chain beyond being hashed.
type Payload map[string]Value

// Validate rejects uninitialized values and non-finite floats.
func (p Payload) Validate() error {
	for k, v := range p {
		if err := v.validate(); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	return nil
}

// Clone returns a copy that is never nil.
func (p Payload) Clone() Payload {
	if p == nil {
		return Payload{}
	}
	return maps.Clone(p)
}

// marshalCompact encodes v as compact JSON without HTML escaping and without
// the trailing newline json.Encoder appends.
func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
