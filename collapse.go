package toon

import "strings"

// collapseChain walks a single-key object chain starting at (key, val) and
// reports the segment list and terminal value that a Safe-mode key collapse
// would produce. ok is false if no collapse applies (fewer than two
// segments, a segment fails the identifier regex, or the resulting dotted
// key collides with siblingKeys or rootLiteralKeys).
func collapseChain(key string, val Value, flattenDepth int, siblingKeys, rootLiteralKeys map[string]bool) (segments []string, leaf Value, ok bool) {
	segments = []string{key}
	cur := val
	for len(segments) < flattenDepth {
		if cur.Kind() != KindObj || cur.Len() != 1 {
			break
		}
		e := cur.entries()[0]
		segments = append(segments, e.key)
		cur = e.val
	}

	if len(segments) < 2 {
		return nil, Value{}, false
	}
	for _, seg := range segments {
		if !identifierRE.MatchString(seg) {
			return nil, Value{}, false
		}
	}

	dotted := strings.Join(segments, ".")
	if siblingKeys[dotted] || rootLiteralKeys[dotted] {
		return nil, Value{}, false
	}

	return segments, cur, true
}
