package toon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Kind identifies which case of the Value union is populated.
type Kind int8

// The five JSON-compatible cases plus Null. There is no separate integer
// case: every decoded number is pinned to a double-precision float.
const (
	KindNull Kind = iota
	KindBool
	KindNum
	KindStr
	KindArr
	KindObj
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNum:
		return "number"
	case KindStr:
		return "string"
	case KindArr:
		return "array"
	case KindObj:
		return "object"
	default:
		return "<unknown>"
	}
}

// entry is one key/value pair of an Obj, preserving input/emission order.
type entry struct {
	key string
	val Value
}

// Value is a tagged union over TOON's data model: Null, Bool, Num, Str, an
// ordered Arr of Value, or an ordered Obj mapping string to Value with
// unique keys. The zero Value is Null.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	str     string
	arr     []Value
	obj     []entry
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean scalar.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Num wraps a numeric scalar. NaN and infinities normalize to Null; -0
// normalizes to +0.
func Num(f float64) Value {
	if isNaNOrInf(f) {
		return Null()
	}
	if f == 0 {
		f = 0 // collapses -0 to +0
	}
	return Value{kind: KindNum, number: f}
}

// Str wraps a string scalar.
func Str(s string) Value { return Value{kind: KindStr, str: s} }

// Arr builds an array Value from already-normalized elements.
func Arr(elems ...Value) Value { return Value{kind: KindArr, arr: elems} }

// Obj builds an empty object Value; use Set to populate it in order.
func Obj() Value { return Value{kind: KindObj} }

// Set appends or overwrites a key in an Obj Value, preserving first-seen
// position on overwrite (last write wins on value), and returns the
// updated Value.
func (v Value) Set(key string, val Value) Value {
	for i := range v.obj {
		if v.obj[i].key == key {
			v.obj[i].val = val
			return v
		}
	}
	v.obj = append(v.obj, entry{key, val})
	return v
}

// Kind reports which case is populated.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the Null case.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsPrimitive reports whether v is Null, Bool, Num, or Str.
func (v Value) IsPrimitive() bool {
	switch v.kind {
	case KindNull, KindBool, KindNum, KindStr:
		return true
	default:
		return false
	}
}

// AsBool extracts a boolean. Returns ErrType if v is not Bool.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("%w: value is %s, not bool", ErrType, v.kind)
	}
	return v.boolean, nil
}

// AsNum extracts a float64. Returns ErrType if v is not Num.
func (v Value) AsNum() (float64, error) {
	if v.kind != KindNum {
		return 0, fmt.Errorf("%w: value is %s, not number", ErrType, v.kind)
	}
	return v.number, nil
}

// AsStr extracts a string. Returns ErrType if v is not Str.
func (v Value) AsStr() (string, error) {
	if v.kind != KindStr {
		return "", fmt.Errorf("%w: value is %s, not string", ErrType, v.kind)
	}
	return v.str, nil
}

// AsArr extracts the element slice. Returns ErrType if v is not Arr.
func (v Value) AsArr() ([]Value, error) {
	if v.kind != KindArr {
		return nil, fmt.Errorf("%w: value is %s, not array", ErrType, v.kind)
	}
	return v.arr, nil
}

// Keys returns the object's keys in emission order. Returns nil if v is not
// Obj.
func (v Value) Keys() []string {
	if v.kind != KindObj {
		return nil
	}
	keys := make([]string, len(v.obj))
	for i, e := range v.obj {
		keys[i] = e.key
	}
	return keys
}

// Len returns the number of entries for Arr/Obj, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArr:
		return len(v.arr)
	case KindObj:
		return len(v.obj)
	default:
		return 0
	}
}

// Index returns the fluent element at i, or Null if v is not Arr or i is out
// of range. Mirrors the no-error fluent-access style of json.Value.Index.
func (v Value) Index(i int) Value {
	if v.kind != KindArr || i < 0 || i >= len(v.arr) {
		return Null()
	}
	return v.arr[i]
}

// Has reports whether v is an Obj containing key k.
func (v Value) Has(k string) bool {
	if v.kind != KindObj {
		return false
	}
	for _, e := range v.obj {
		if e.key == k {
			return true
		}
	}
	return false
}

// Key returns the fluent value for k, or Null if v is not Obj or k is
// absent. Mirrors json.Value.Key.
func (v Value) Key(k string) Value {
	if v.kind != KindObj {
		return Null()
	}
	for _, e := range v.obj {
		if e.key == k {
			return e.val
		}
	}
	return Null()
}

// entries exposes the ordered key/value pairs of an Obj for package-internal
// iteration (encode, collapse, expand).
func (v Value) entries() []entry {
	return v.obj
}

func isNaNOrInf(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// MarshalJSON renders v as JSON, preserving Obj key order (json.Marshal on
// a Go map cannot do this, which is why Value implements the interface
// directly instead of converting to map[string]any first).
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.boolean)
	case KindNum:
		return json.Marshal(v.number)
	case KindStr:
		return json.Marshal(v.str)
	case KindArr:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObj:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, e := range v.obj {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(e.key)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := e.val.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}
