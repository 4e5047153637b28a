package toon

// arrayShape is the result of classifying an Arr for encoding: empty,
// all-primitive (inline), uniform-object (tabular), or mixed (list).
type arrayShape int8

const (
	shapeEmpty arrayShape = iota
	shapeInlinePrimitive
	shapeTabularUniform
	shapeList
)

// analyzeShape classifies arr and, for the tabular case, returns the
// uniform field order (taken from the first element).
func analyzeShape(arr []Value) (arrayShape, []string) {
	if len(arr) == 0 {
		return shapeEmpty, nil
	}

	allPrimitive := true
	for _, v := range arr {
		if !v.IsPrimitive() {
			allPrimitive = false
			break
		}
	}
	if allPrimitive {
		return shapeInlinePrimitive, nil
	}

	if fields, ok := uniformObjectFields(arr); ok {
		return shapeTabularUniform, fields
	}

	return shapeList, nil
}

// uniformObjectFields reports whether every element of arr is an Obj with
// the same ordered key set (order fixed by the first element) and every
// value primitive, returning that key order on success.
func uniformObjectFields(arr []Value) ([]string, bool) {
	first := arr[0]
	if first.Kind() != KindObj {
		return nil, false
	}
	fields := first.Keys()
	for _, v := range arr {
		if v.Kind() != KindObj {
			return nil, false
		}
		keys := v.Keys()
		if len(keys) != len(fields) {
			return nil, false
		}
		for i, k := range keys {
			if k != fields[i] {
				return nil, false
			}
		}
		for _, k := range fields {
			if !v.Key(k).IsPrimitive() {
				return nil, false
			}
		}
	}
	return fields, true
}
