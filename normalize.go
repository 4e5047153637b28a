package toon

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
)

// defaultMaxDepth is the recursion guard for Normalize.
const defaultMaxDepth = 1000

// Normalize maps an arbitrary host value (the Go "JSON-compatible" types
// produced by encoding/json.Unmarshal into any, plus a few recognized host
// primitives) into the package's Value tree. maxDepth <= 0 selects
// defaultMaxDepth.
func Normalize(v any, maxDepth int) (Value, error) {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return normalize(v, maxDepth)
}

func normalize(v any, depthLeft int) (Value, error) {
	if depthLeft < 0 {
		return Null(), fmt.Errorf("%w", ErrDepthExceeded)
	}

	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return Str(x), nil
	case float32:
		return Num(float64(x)), nil
	case float64:
		return Num(x), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Num(toFloat(x)), nil
	case uuid.UUID:
		return Str(x.String()), nil
	case *uuid.UUID:
		if x == nil {
			return Null(), nil
		}
		return Str(x.String()), nil
	case time.Time:
		return Str(x.UTC().Format(time.RFC3339Nano)), nil
	case *time.Time:
		if x == nil {
			return Null(), nil
		}
		return Str(x.UTC().Format(time.RFC3339Nano)), nil
	case encoding.TextMarshaler:
		b, err := x.MarshalText()
		if err != nil {
			return Null(), fmt.Errorf("%w: MarshalText: %v", ErrType, err)
		}
		return Str(string(b)), nil
	case []any:
		out := make([]Value, 0, len(x))
		for _, elem := range x {
			nv, err := normalize(elem, depthLeft-1)
			if err != nil {
				return Null(), err
			}
			out = append(out, nv)
		}
		return Arr(out...), nil
	case map[string]any:
		return normalizeMap(x, depthLeft)
	}

	return normalizeReflect(reflect.ValueOf(v), depthLeft)
}

func toFloat(v any) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	default:
		return 0
	}
}

// normalizeMap normalizes an unordered Go map into an Obj whose keys follow
// natural (lexicographic) ordering, since map iteration order is otherwise
// unspecified.
func normalizeMap(m map[string]any, depthLeft int) (Value, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := Obj()
	for _, k := range keys {
		nv, err := normalize(m[k], depthLeft-1)
		if err != nil {
			return Null(), err
		}
		out = out.Set(k, nv)
	}
	return out, nil
}

func normalizeReflect(rv reflect.Value, depthLeft int) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return normalize(rv.Elem().Interface(), depthLeft)
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		out := make([]Value, 0, n)
		for i := 0; i < n; i++ {
			nv, err := normalize(rv.Index(i).Interface(), depthLeft-1)
			if err != nil {
				return Null(), err
			}
			out = append(out, nv)
		}
		return Arr(out...), nil
	case reflect.Map:
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return normalizeMap(m, depthLeft)
	case reflect.Struct:
		out := Obj()
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			nv, err := normalize(rv.Field(i).Interface(), depthLeft-1)
			if err != nil {
				return Null(), err
			}
			out = out.Set(f.Name, nv)
		}
		return out, nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return Str(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Num(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Num(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Num(rv.Float()), nil
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		// Not representable: callables and opaque pointers normalize to Null.
		return Null(), nil
	default:
		return Null(), nil
	}
}
