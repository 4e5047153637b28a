package toon

import "strings"

// ExpandMode selects whether Decode reverses key collapsing.
type ExpandMode int8

const (
	ExpandOff ExpandMode = iota
	ExpandSafe
)

// expandPaths reverses key collapsing on a decoded tree. quotedKeys holds
// the set of dotted-path prefixes (joined with '.') whose raw key form was
// quoted in the source and must therefore be kept literal rather than
// split. strict controls whether an Obj/non-Obj merge conflict is an error
// (ExpansionConflict) or silently last-write-wins.
func expandPaths(v Value, quotedKeys map[string]bool, strict bool) (Value, error) {
	return expandAt(v, "", quotedKeys, strict)
}

func expandAt(v Value, prefix string, quotedKeys map[string]bool, strict bool) (Value, error) {
	switch v.Kind() {
	case KindObj:
		out := Obj()
		for _, e := range v.entries() {
			path := e.key
			if prefix != "" {
				path = prefix + "." + e.key
			}
			childVal, err := expandAt(e.val, path, quotedKeys, strict)
			if err != nil {
				return Value{}, err
			}

			if quotedKeys[path] || !dottedKeySafe(e.key) {
				merged, err := mergeObj(out, e.key, childVal, strict)
				if err != nil {
					return Value{}, err
				}
				out = merged
				continue
			}

			segments := strings.Split(e.key, ".")
			nested := childVal
			for i := len(segments) - 1; i > 0; i-- {
				nested = Obj().Set(segments[i], nested)
			}
			merged, err := mergeObj(out, segments[0], nested, strict)
			if err != nil {
				return Value{}, err
			}
			out = merged
		}
		return out, nil
	case KindArr:
		elems, _ := v.AsArr()
		out := make([]Value, len(elems))
		for i, e := range elems {
			ev, err := expandAt(e, "", quotedKeys, strict)
			if err != nil {
				return Value{}, err
			}
			out[i] = ev
		}
		return Arr(out...), nil
	default:
		return v, nil
	}
}

// dottedKeySafe reports whether every dot-separated segment of key matches
// the identifier regex.
func dottedKeySafe(key string) bool {
	if !strings.Contains(key, ".") {
		return false
	}
	for _, seg := range strings.Split(key, ".") {
		if !identifierRE.MatchString(seg) {
			return false
		}
	}
	return true
}

// mergeObj deep-merges val into out under key: two Objs at the same path
// are merged recursively rather than one overwriting the other.
func mergeObj(out Value, key string, val Value, strict bool) (Value, error) {
	if !out.Has(key) {
		return out.Set(key, val), nil
	}
	existing := out.Key(key)
	if existing.Kind() == KindObj && val.Kind() == KindObj {
		merged := existing
		for _, e := range val.entries() {
			m, err := mergeObj(merged, e.key, e.val, strict)
			if err != nil {
				return Value{}, err
			}
			merged = m
		}
		return out.Set(key, merged), nil
	}
	if strict {
		return Value{}, &SyntaxError{Kind: ErrExpansionConfl, Suggestion: "conflicting types at path " + key}
	}
	return out.Set(key, val), nil
}
