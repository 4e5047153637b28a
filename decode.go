package toon

import (
	"fmt"
	"strings"
)

// Delimiter identifies the active separator character for inline arrays and
// tabular rows.
type Delimiter byte

// The three delimiters TOON supports.
const (
	DelimComma Delimiter = ','
	DelimTab   Delimiter = '\t'
	DelimPipe  Delimiter = '|'
)

// DecodeOptions configures Decode/DecodeFromLines/DecodeEvents.
type DecodeOptions struct {
	// Indent is the number of spaces one level of indentation occupies.
	// Zero selects 2.
	Indent int
	// Strict enables tabs/indent/length/escape validation. An explicit
	// zero-value Strict field means non-strict, so Go's usual "zero value
	// is useful" convention doesn't hold here; callers should start from
	// DefaultDecodeOptions.
	Strict bool
	// ExpandPaths selects whether collapsed dotted keys are expanded back
	// into nested objects after decoding.
	ExpandPaths ExpandMode
}

// DefaultDecodeOptions returns {Indent: 2, Strict: true, ExpandPaths: Off}.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{Indent: 2, Strict: true, ExpandPaths: ExpandOff}
}

func (o DecodeOptions) indentSize() int {
	if o.Indent <= 0 {
		return 2
	}
	return o.Indent
}

// decoder carries the mutable state threaded through the mutually recursive
// object/tabularArray/listArray/listItem methods, plus the quoted-key
// side-car set path expansion needs. Grounded on rhogenson-ccl/asspb.go's
// *parser receiver style.
type decoder struct {
	delimiter  byte
	strict     bool
	quotedKeys map[string]bool
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Decode parses a TOON document into a Value.
func Decode(input string, opts DecodeOptions) (Value, error) {
	cur, err := scan(input, opts.indentSize(), opts.Strict)
	if err != nil {
		return Value{}, err
	}
	return decodeCursor(cur, opts)
}

// DecodeFromLines is Decode's sibling taking pre-split lines, useful when
// the caller already has a line sequence (e.g. from EncodeLines) and wants
// to avoid re-joining it.
func DecodeFromLines(lines []string, opts DecodeOptions) (Value, error) {
	return Decode(strings.Join(lines, "\n"), opts)
}

func decodeCursor(cur Cursor, opts DecodeOptions) (Value, error) {
	d := &decoder{delimiter: byte(DelimComma), strict: opts.Strict, quotedKeys: map[string]bool{}}

	v, err := d.decodeRoot(cur)
	if err != nil {
		return Value{}, err
	}

	if opts.ExpandPaths == ExpandSafe {
		return expandPaths(v, d.quotedKeys, opts.Strict)
	}
	return v, nil
}

// decodeRoot dispatches on the shape of the root value: a lone primitive
// line, an unnamed top-level array header, or an object.
func (d *decoder) decodeRoot(cur Cursor) (Value, error) {
	if cur.AtEnd() {
		return Obj(), nil
	}

	if len(cur.lines) == 1 {
		line := cur.lines[0]
		if unquotedIndexByte(line.Content, '[') < 0 && unquotedIndexByte(line.Content, ':') < 0 {
			return primitiveToken(line.Content, d.strict)
		}
	}

	first, _ := cur.Peek()
	hdr, matched, err := parseArrayHeaderLine(first.Content, d.delimiter, d.strict)
	if err != nil {
		return Value{}, err
	}
	if matched && !hdr.HasKey {
		next := cur.Advance(1)
		v, _, err := d.arrayFromHeader(next, 1, hdr, "")
		return v, err
	}

	v, _, err := d.object(cur, 0, "")
	return v, err
}

// object decodes a block of entries at depth, dispatching each line to
// parseObjectEntryLine.
func (d *decoder) object(cur Cursor, depth int, path string) (Value, Cursor, error) {
	out := Obj()
	for {
		line, ok := cur.PeekAtDepth(depth)
		if !ok {
			break
		}
		next := cur.Advance(1)
		key, val, next, err := d.parseObjectEntryLine(line.Content, line, depth+1, next, path)
		if err != nil {
			return Value{}, cur, err
		}
		out = out.Set(key, val)
		cur = next
	}
	return out, cur, nil
}

// parseObjectEntryLine parses one object entry's source text (content),
// attributing position-bearing errors to errLine, and recursing into a
// nested block at blockDepth when the entry's value isn't inline. Shared by
// object (where content is a whole line) and listItem (where content is the
// text fused onto a "- " line).
func (d *decoder) parseObjectEntryLine(content string, errLine ParsedLine, blockDepth int, cur Cursor, path string) (string, Value, Cursor, error) {
	colonIdx := unquotedIndexByte(content, ':')
	if colonIdx < 0 {
		return "", Value{}, cur, newSyntaxError(ErrExpectedValue, errLine, "expected ':' in key-value line")
	}
	keyPart := content[:colonIdx]
	valuePart := strings.TrimSpace(content[colonIdx+1:])
	bracketIdx := unquotedIndexByte(keyPart, '[')

	if bracketIdx >= 0 {
		hdr, matched, err := parseArrayHeaderLine(content, d.delimiter, d.strict)
		if err != nil {
			return "", Value{}, cur, err
		}
		if !matched {
			return "", Value{}, cur, newSyntaxError(ErrBadHeader, errLine, "malformed array header")
		}
		childPath := joinPath(path, hdr.Key)
		if hdr.KeyWasQuoted {
			d.quotedKeys[childPath] = true
		}
		val, next, err := d.arrayFromHeader(cur, blockDepth, hdr, childPath)
		if err != nil {
			return "", Value{}, cur, err
		}
		return hdr.Key, val, next, nil
	}

	kt, err := parseKeyToken(keyPart, d.strict)
	if err != nil {
		return "", Value{}, cur, err
	}
	childPath := joinPath(path, kt.Key)
	if kt.WasQuoted {
		d.quotedKeys[childPath] = true
	}

	if valuePart == "" {
		if _, ok := cur.PeekAtDepth(blockDepth); ok {
			val, next, err := d.object(cur, blockDepth, childPath)
			if err != nil {
				return "", Value{}, cur, err
			}
			return kt.Key, val, next, nil
		}
		return kt.Key, Null(), cur, nil
	}

	val, err := primitiveToken(valuePart, d.strict)
	if err != nil {
		return "", Value{}, cur, err
	}
	return kt.Key, val, cur, nil
}

// arrayFromHeader dispatches a parsed ArrayHeader to the inline, tabular, or
// list decoder, the inverse of the encoder's shape classification.
func (d *decoder) arrayFromHeader(cur Cursor, itemDepth int, hdr ArrayHeader, path string) (Value, Cursor, error) {
	switch {
	case hdr.HasFields:
		return d.tabularArray(cur, itemDepth, hdr, path)
	case hdr.HasInline:
		return d.inlineArray(cur, hdr)
	case hdr.Length == 0:
		return Arr(), cur, nil
	default:
		return d.listArray(cur, itemDepth, hdr, path)
	}
}

func (d *decoder) inlineArray(cur Cursor, hdr ArrayHeader) (Value, Cursor, error) {
	var tokens []string
	if hdr.InlineValues != "" {
		tokens = delimitedValues(hdr.InlineValues, hdr.Delimiter)
	}
	if d.strict && len(tokens) != hdr.Length {
		return Value{}, cur, &SyntaxError{
			Kind:       ErrLengthMismatch,
			Suggestion: fmt.Sprintf("expected %d inline values, got %d", hdr.Length, len(tokens)),
		}
	}
	vals := make([]Value, 0, len(tokens))
	for _, t := range tokens {
		v, err := primitiveToken(t, d.strict)
		if err != nil {
			return Value{}, cur, err
		}
		vals = append(vals, v)
	}
	return Arr(vals...), cur, nil
}

func (d *decoder) tabularArray(cur Cursor, itemDepth int, hdr ArrayHeader, path string) (Value, Cursor, error) {
	var rows []Value
	for d.isRowLine(cur, itemDepth, hdr.Delimiter) {
		line, ok := cur.PeekAtDepth(itemDepth)
		if !ok {
			break
		}
		tokens := delimitedValues(line.Content, hdr.Delimiter)
		if d.strict && len(tokens) != len(hdr.Fields) {
			return Value{}, cur, &SyntaxError{
				Kind:       ErrLengthMismatch,
				Line:       line.LineNumber,
				Suggestion: "row field count does not match header field count",
			}
		}
		obj := Obj()
		for i, f := range hdr.Fields {
			var raw string
			if i < len(tokens) {
				raw = tokens[i]
			}
			v, err := primitiveToken(raw, d.strict)
			if err != nil {
				return Value{}, cur, err
			}
			obj = obj.Set(f, v)
		}
		rows = append(rows, obj)
		cur = cur.Advance(1)
	}
	if d.strict && len(rows) != hdr.Length {
		return Value{}, cur, &SyntaxError{
			Kind:       ErrLengthMismatch,
			Suggestion: fmt.Sprintf("expected %d rows, got %d", hdr.Length, len(rows)),
		}
	}
	return Arr(rows...), cur, nil
}

// isRowLine disambiguates a tabular data row from a sibling key-value line
// at the same depth: a line with no unquoted colon is always a row; a line
// with no unquoted delimiter is always a key-value pair; a delimiter before
// the first colon marks a row. When the colon comes first, the next line at
// the same depth decides: the current line is a row if that next line has no
// unquoted colon or has its delimiter before its colon.
func (d *decoder) isRowLine(cur Cursor, depth int, delimiter byte) bool {
	line, ok := cur.PeekAtDepth(depth)
	if !ok {
		return false
	}
	colonIdx := unquotedIndexByte(line.Content, ':')
	if colonIdx < 0 {
		return true
	}
	delimIdx := unquotedIndexByte(line.Content, delimiter)
	if delimIdx < 0 {
		return false
	}
	if delimIdx < colonIdx {
		return true
	}

	nextLine, ok := cur.Advance(1).PeekAtDepth(depth)
	if !ok {
		return false
	}
	nColon := unquotedIndexByte(nextLine.Content, ':')
	if nColon < 0 {
		return true
	}
	nDelim := unquotedIndexByte(nextLine.Content, delimiter)
	return nDelim >= 0 && nDelim < nColon
}

func (d *decoder) listArray(cur Cursor, itemDepth int, hdr ArrayHeader, path string) (Value, Cursor, error) {
	var items []Value
	for {
		line, ok := cur.PeekAtDepth(itemDepth)
		if !ok || !strings.HasPrefix(line.Content, "-") {
			break
		}
		v, next, err := d.listItem(cur, itemDepth, path)
		if err != nil {
			return Value{}, cur, err
		}
		items = append(items, v)
		cur = next
	}
	if d.strict && len(items) != hdr.Length {
		return Value{}, cur, &SyntaxError{
			Kind:       ErrLengthMismatch,
			Suggestion: fmt.Sprintf("expected %d items, got %d", hdr.Length, len(items)),
		}
	}
	return Arr(items...), cur, nil
}

// listItem decodes a single "- " entry: a nested array header, an object
// (first key-value fused onto the dash line, remaining keys one level
// deeper), or a primitive.
func (d *decoder) listItem(cur Cursor, itemDepth int, path string) (Value, Cursor, error) {
	line, _ := cur.Peek()
	rest := strings.TrimPrefix(line.Content, "-")
	if rest != "" {
		if rest[0] != ' ' {
			return Value{}, cur, newSyntaxError(ErrInvalidListItem, line, "list items must start with '- '")
		}
		rest = rest[1:]
	}

	bracketIdx := unquotedIndexByte(rest, '[')
	colonIdx := unquotedIndexByte(rest, ':')

	switch {
	case rest == "":
		return Null(), cur.Advance(1), nil
	case bracketIdx >= 0 && (colonIdx < 0 || bracketIdx < colonIdx):
		hdr, matched, err := parseArrayHeaderLine(rest, d.delimiter, d.strict)
		if err != nil {
			return Value{}, cur, err
		}
		if !matched {
			return Value{}, cur, newSyntaxError(ErrBadHeader, line, "malformed array header in list item")
		}
		next := cur.Advance(1)
		return d.arrayFromHeader(next, itemDepth+1, hdr, path)
	case colonIdx >= 0:
		next := cur.Advance(1)
		key, val, next, err := d.parseObjectEntryLine(rest, line, itemDepth+2, next, path)
		if err != nil {
			return Value{}, cur, err
		}
		out := Obj().Set(key, val)
		for {
			sibling, ok := next.PeekAtDepth(itemDepth + 1)
			if !ok {
				break
			}
			advanced := next.Advance(1)
			k2, v2, advanced, err := d.parseObjectEntryLine(sibling.Content, sibling, itemDepth+2, advanced, path)
			if err != nil {
				return Value{}, cur, err
			}
			out = out.Set(k2, v2)
			next = advanced
		}
		return out, next, nil
	default:
		v, err := primitiveToken(rest, d.strict)
		if err != nil {
			return Value{}, cur, err
		}
		return v, cur.Advance(1), nil
	}
}
