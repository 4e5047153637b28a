package toon

import (
	"fmt"
	"iter"
	"strings"
)

// EventKind identifies which case of a structural Event is populated.
type EventKind int8

const (
	EventStartObject EventKind = iota
	EventEndObject
	EventStartArray
	EventEndArray
	EventKey
	EventPrimitive
)

func (k EventKind) String() string {
	switch k {
	case EventStartObject:
		return "start_object"
	case EventEndObject:
		return "end_object"
	case EventStartArray:
		return "start_array"
	case EventEndArray:
		return "end_array"
	case EventKey:
		return "key"
	case EventPrimitive:
		return "primitive"
	default:
		return "<unknown>"
	}
}

// Event is one step of the streaming structural walk a TOON document
// unfolds into: the open/close of a container, a key preceding an entry's
// value, or a scalar. A consumer sees these in the same order a recursive
// decode would visit them, without first materializing the whole tree.
type Event struct {
	Kind         EventKind
	Key          string
	KeyWasQuoted bool
	Value        Value     // populated for EventPrimitive
	Length       int       // populated for EventStartArray
	Line         int       // source line number, 1-based, 0 if not applicable
}

// Events lazily walks input and yields the structural events that make it
// up, stopping early (and closing over no further state) if the consumer's
// range loop breaks. Grounded on rhogenson-ccl/lexer.go's tokens: a struct
// holding the yield closure as a field, invoked from a method that returns
// early the moment yield reports the consumer is done.
func Events(input string, opts DecodeOptions) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		cur, err := scan(input, opts.indentSize(), opts.Strict)
		if err != nil {
			yield(Event{}, err)
			return
		}
		e := &eventWalker{delimiter: byte(DelimComma), strict: opts.Strict, yield: yield}
		e.root(cur)
	}
}

type eventWalker struct {
	delimiter byte
	strict    bool
	yield     func(Event, error) bool
	done      bool
}

func (e *eventWalker) emit(ev Event) bool {
	if e.done {
		return false
	}
	if !e.yield(ev, nil) {
		e.done = true
		return false
	}
	return true
}

func (e *eventWalker) fail(err error) {
	if e.done {
		return
	}
	e.done = true
	e.yield(Event{}, err)
}

func (e *eventWalker) root(cur Cursor) {
	if cur.AtEnd() {
		e.emit(Event{Kind: EventStartObject})
		e.emit(Event{Kind: EventEndObject})
		return
	}

	if len(cur.lines) == 1 {
		line := cur.lines[0]
		if unquotedIndexByte(line.Content, '[') < 0 && unquotedIndexByte(line.Content, ':') < 0 {
			v, err := primitiveToken(line.Content, e.strict)
			if err != nil {
				e.fail(err)
				return
			}
			e.emit(Event{Kind: EventPrimitive, Value: v, Line: line.LineNumber})
			return
		}
	}

	first, _ := cur.Peek()
	hdr, matched, err := parseArrayHeaderLine(first.Content, e.delimiter, e.strict)
	if err != nil {
		e.fail(err)
		return
	}
	if matched && !hdr.HasKey {
		e.array(cur.Advance(1), 1, hdr)
		return
	}

	e.object(cur, 0)
}

func (e *eventWalker) object(cur Cursor, depth int) Cursor {
	if !e.emit(Event{Kind: EventStartObject}) {
		return cur
	}
	for {
		line, ok := cur.PeekAtDepth(depth)
		if !ok {
			break
		}
		next := cur.Advance(1)
		advanced, ok := e.entry(line.Content, line, depth+1, next)
		if !ok {
			return cur
		}
		cur = advanced
	}
	e.emit(Event{Kind: EventEndObject})
	return cur
}

// entry walks one "key: value" line, emitting an EventKey followed by
// whatever events the value unfolds into.
func (e *eventWalker) entry(content string, errLine ParsedLine, blockDepth int, cur Cursor) (Cursor, bool) {
	colonIdx := unquotedIndexByte(content, ':')
	if colonIdx < 0 {
		e.fail(newSyntaxError(ErrExpectedValue, errLine, "expected ':' in key-value line"))
		return cur, false
	}
	keyPart := content[:colonIdx]
	valuePart := strings.TrimSpace(content[colonIdx+1:])
	bracketIdx := unquotedIndexByte(keyPart, '[')

	if bracketIdx >= 0 {
		hdr, matched, err := parseArrayHeaderLine(content, e.delimiter, e.strict)
		if err != nil {
			e.fail(err)
			return cur, false
		}
		if !matched {
			e.fail(newSyntaxError(ErrBadHeader, errLine, "malformed array header"))
			return cur, false
		}
		if !e.emit(Event{Kind: EventKey, Key: hdr.Key, KeyWasQuoted: hdr.KeyWasQuoted, Line: errLine.LineNumber}) {
			return cur, false
		}
		return e.array(cur, blockDepth, hdr), true
	}

	kt, err := parseKeyToken(keyPart, e.strict)
	if err != nil {
		e.fail(err)
		return cur, false
	}
	if !e.emit(Event{Kind: EventKey, Key: kt.Key, KeyWasQuoted: kt.WasQuoted, Line: errLine.LineNumber}) {
		return cur, false
	}

	if valuePart == "" {
		if _, ok := cur.PeekAtDepth(blockDepth); ok {
			return e.object(cur, blockDepth), true
		}
		e.emit(Event{Kind: EventPrimitive, Value: Null(), Line: errLine.LineNumber})
		return cur, true
	}

	v, err := primitiveToken(valuePart, e.strict)
	if err != nil {
		e.fail(err)
		return cur, false
	}
	e.emit(Event{Kind: EventPrimitive, Value: v, Line: errLine.LineNumber})
	return cur, true
}

func (e *eventWalker) array(cur Cursor, itemDepth int, hdr ArrayHeader) Cursor {
	switch {
	case hdr.HasFields:
		return e.tabularArray(cur, itemDepth, hdr)
	case hdr.HasInline:
		return e.inlineArray(cur, hdr)
	case hdr.Length == 0:
		e.emit(Event{Kind: EventStartArray, Length: 0})
		e.emit(Event{Kind: EventEndArray})
		return cur
	default:
		return e.listArray(cur, itemDepth, hdr)
	}
}

func (e *eventWalker) inlineArray(cur Cursor, hdr ArrayHeader) Cursor {
	var tokens []string
	if hdr.InlineValues != "" {
		tokens = delimitedValues(hdr.InlineValues, hdr.Delimiter)
	}
	if e.strict && len(tokens) != hdr.Length {
		e.fail(&SyntaxError{Kind: ErrLengthMismatch, Suggestion: fmt.Sprintf("expected %d inline values, got %d", hdr.Length, len(tokens))})
		return cur
	}
	if !e.emit(Event{Kind: EventStartArray, Length: hdr.Length}) {
		return cur
	}
	for _, t := range tokens {
		v, err := primitiveToken(t, e.strict)
		if err != nil {
			e.fail(err)
			return cur
		}
		if !e.emit(Event{Kind: EventPrimitive, Value: v}) {
			return cur
		}
	}
	e.emit(Event{Kind: EventEndArray})
	return cur
}

func (e *eventWalker) tabularArray(cur Cursor, itemDepth int, hdr ArrayHeader) Cursor {
	if !e.emit(Event{Kind: EventStartArray, Length: hdr.Length}) {
		return cur
	}
	rowCount := 0
	for e.isRowLine(cur, itemDepth, hdr.Delimiter) {
		line, ok := cur.PeekAtDepth(itemDepth)
		if !ok {
			break
		}
		tokens := delimitedValues(line.Content, hdr.Delimiter)
		if e.strict && len(tokens) != len(hdr.Fields) {
			e.fail(&SyntaxError{Kind: ErrLengthMismatch, Line: line.LineNumber, Suggestion: "row field count does not match header field count"})
			return cur
		}
		if !e.emit(Event{Kind: EventStartObject, Line: line.LineNumber}) {
			return cur
		}
		for i, f := range hdr.Fields {
			var raw string
			if i < len(tokens) {
				raw = tokens[i]
			}
			v, err := primitiveToken(raw, e.strict)
			if err != nil {
				e.fail(err)
				return cur
			}
			if !e.emit(Event{Kind: EventKey, Key: f}) {
				return cur
			}
			if !e.emit(Event{Kind: EventPrimitive, Value: v}) {
				return cur
			}
		}
		e.emit(Event{Kind: EventEndObject})
		rowCount++
		cur = cur.Advance(1)
	}
	if e.strict && rowCount != hdr.Length {
		e.fail(&SyntaxError{Kind: ErrLengthMismatch, Suggestion: fmt.Sprintf("expected %d rows, got %d", hdr.Length, rowCount)})
		return cur
	}
	e.emit(Event{Kind: EventEndArray})
	return cur
}

func (e *eventWalker) isRowLine(cur Cursor, depth int, delimiter byte) bool {
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

func (e *eventWalker) listArray(cur Cursor, itemDepth int, hdr ArrayHeader) Cursor {
	if !e.emit(Event{Kind: EventStartArray, Length: hdr.Length}) {
		return cur
	}
	count := 0
	for {
		line, ok := cur.PeekAtDepth(itemDepth)
		if !ok || !strings.HasPrefix(line.Content, "-") {
			break
		}
		next, ok := e.listItem(cur, itemDepth)
		if !ok {
			return cur
		}
		cur = next
		count++
	}
	if e.strict && count != hdr.Length {
		e.fail(&SyntaxError{Kind: ErrLengthMismatch, Suggestion: fmt.Sprintf("expected %d items, got %d", hdr.Length, count)})
		return cur
	}
	e.emit(Event{Kind: EventEndArray})
	return cur
}

func (e *eventWalker) listItem(cur Cursor, itemDepth int) (Cursor, bool) {
	line, _ := cur.Peek()
	rest := strings.TrimPrefix(line.Content, "-")
	if rest != "" {
		if rest[0] != ' ' {
			e.fail(newSyntaxError(ErrInvalidListItem, line, "list items must start with '- '"))
			return cur, false
		}
		rest = rest[1:]
	}

	bracketIdx := unquotedIndexByte(rest, '[')
	colonIdx := unquotedIndexByte(rest, ':')

	switch {
	case rest == "":
		ok := e.emit(Event{Kind: EventPrimitive, Value: Null(), Line: line.LineNumber})
		return cur.Advance(1), ok
	case bracketIdx >= 0 && (colonIdx < 0 || bracketIdx < colonIdx):
		hdr, matched, err := parseArrayHeaderLine(rest, e.delimiter, e.strict)
		if err != nil {
			e.fail(err)
			return cur, false
		}
		if !matched {
			e.fail(newSyntaxError(ErrBadHeader, line, "malformed array header in list item"))
			return cur, false
		}
		return e.array(cur.Advance(1), itemDepth+1, hdr), true
	case colonIdx >= 0:
		if !e.emit(Event{Kind: EventStartObject, Line: line.LineNumber}) {
			return cur, false
		}
		next := cur.Advance(1)
		advanced, ok := e.entry(rest, line, itemDepth+2, next)
		if !ok {
			return cur, false
		}
		next = advanced
		for {
			sibling, ok := next.PeekAtDepth(itemDepth + 1)
			if !ok {
				break
			}
			advanced := next.Advance(1)
			advanced, ok = e.entry(sibling.Content, sibling, itemDepth+2, advanced)
			if !ok {
				return cur, false
			}
			next = advanced
		}
		if !e.emit(Event{Kind: EventEndObject}) {
			return cur, false
		}
		return next, true
	default:
		v, err := primitiveToken(rest, e.strict)
		if err != nil {
			e.fail(err)
			return cur, false
		}
		ok := e.emit(Event{Kind: EventPrimitive, Value: v, Line: line.LineNumber})
		return cur.Advance(1), ok
	}
}

// EventsToValue reduces a structural event sequence back into a Value
// tree, using a stack of in-progress containers and pending keys. Returns
// ErrIncomplete if the sequence ends with unmatched Start events.
func EventsToValue(events iter.Seq2[Event, error]) (Value, error) {
	type frame struct {
		isArray  bool
		elems    []Value
		obj      Value
		pending  string
		hasKey   bool
	}

	var stack []frame
	var root Value
	haveRoot := false

	place := func(v Value) error {
		if len(stack) == 0 {
			if haveRoot {
				return fmt.Errorf("%w: multiple root values", ErrParse)
			}
			root = v
			haveRoot = true
			return nil
		}
		top := &stack[len(stack)-1]
		if top.isArray {
			top.elems = append(top.elems, v)
			return nil
		}
		if !top.hasKey {
			return fmt.Errorf("%w: value without preceding key", ErrParse)
		}
		top.obj = top.obj.Set(top.pending, v)
		top.hasKey = false
		return nil
	}

	for ev, err := range events {
		if err != nil {
			return Value{}, err
		}
		switch ev.Kind {
		case EventStartObject:
			stack = append(stack, frame{obj: Obj()})
		case EventEndObject:
			if len(stack) == 0 || stack[len(stack)-1].isArray {
				return Value{}, fmt.Errorf("%w: unmatched end_object", ErrIncomplete)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if err := place(top.obj); err != nil {
				return Value{}, err
			}
		case EventStartArray:
			stack = append(stack, frame{isArray: true})
		case EventEndArray:
			if len(stack) == 0 || !stack[len(stack)-1].isArray {
				return Value{}, fmt.Errorf("%w: unmatched end_array", ErrIncomplete)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if err := place(Arr(top.elems...)); err != nil {
				return Value{}, err
			}
		case EventKey:
			if len(stack) == 0 || stack[len(stack)-1].isArray {
				return Value{}, fmt.Errorf("%w: key event outside object", ErrParse)
			}
			stack[len(stack)-1].pending = ev.Key
			stack[len(stack)-1].hasKey = true
		case EventPrimitive:
			if err := place(ev.Value); err != nil {
				return Value{}, err
			}
		}
	}

	if len(stack) != 0 {
		return Value{}, fmt.Errorf("%w: %d unclosed container(s)", ErrIncomplete, len(stack))
	}
	if !haveRoot {
		return Null(), nil
	}
	return root, nil
}
