package toon

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyCollapsing selects whether Encode fuses single-key object chains into
// dotted keys (C5).
type KeyCollapsing int8

const (
	CollapseOff KeyCollapsing = iota
	CollapseSafe
)

// EncodeOptions configures Encode/EncodeLines.
type EncodeOptions struct {
	// Indent is the number of spaces one level of indentation occupies.
	// Zero selects 2.
	Indent int
	// Delimiter is the active separator for inline arrays and tabular
	// rows. Zero selects DelimComma.
	Delimiter Delimiter
	// KeyCollapsing enables C5.
	KeyCollapsing KeyCollapsing
	// FlattenDepth caps how many segments a collapsed key chain may
	// carry. Zero (or negative) means unbounded.
	FlattenDepth int
}

// DefaultEncodeOptions returns {Indent: 2, Delimiter: DelimComma,
// KeyCollapsing: Off, FlattenDepth: unbounded}.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Indent: 2, Delimiter: DelimComma}
}

func (o EncodeOptions) indentSize() int {
	if o.Indent <= 0 {
		return 2
	}
	return o.Indent
}

func (o EncodeOptions) delimiter() byte {
	if o.Delimiter == 0 {
		return byte(DelimComma)
	}
	return byte(o.Delimiter)
}

func (o EncodeOptions) flattenDepth() int {
	if o.FlattenDepth <= 0 {
		return 1<<31 - 1
	}
	return o.FlattenDepth
}

type encoder struct {
	w            *writer
	delimiter    byte
	collapse     bool
	flattenDepth int
	rootLiteral  map[string]bool
}

// Encode renders v as canonical TOON text.
func Encode(v Value, opts EncodeOptions) (string, error) {
	e := newEncoder(opts)
	if err := e.encodeRoot(v); err != nil {
		return "", err
	}
	return e.w.String(), nil
}

// EncodeLines is Encode's sibling returning one element per output line, no
// trailing newline per element.
func EncodeLines(v Value, opts EncodeOptions) ([]string, error) {
	e := newEncoder(opts)
	if err := e.encodeRoot(v); err != nil {
		return nil, err
	}
	return e.w.Lines(), nil
}

func newEncoder(opts EncodeOptions) *encoder {
	return &encoder{
		w:            newWriter(opts.indentSize()),
		delimiter:    opts.delimiter(),
		collapse:     opts.KeyCollapsing == CollapseSafe,
		flattenDepth: opts.flattenDepth(),
	}
}

func (e *encoder) encodeRoot(v Value) error {
	switch v.Kind() {
	case KindObj:
		if v.Len() == 0 {
			return nil
		}
		e.rootLiteral = rootLiteralKeySet(v)
		return e.encodeObjectBody(v, 0)
	case KindArr:
		elems, _ := v.AsArr()
		if len(elems) == 0 {
			e.w.line(0, "[0]")
			return nil
		}
		return e.encodeArray("", 0, elems)
	default:
		e.w.line(0, e.scalarLiteral(v))
		return nil
	}
}

func rootLiteralKeySet(v Value) map[string]bool {
	keys := v.Keys()
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// encodeObjectBody emits every entry of v at depth.
func (e *encoder) encodeObjectBody(v Value, depth int) error {
	entries := v.entries()
	siblings := make(map[string]bool, len(entries))
	for _, en := range entries {
		siblings[en.key] = true
	}

	for _, en := range entries {
		delete(siblings, en.key)
		if err := e.encodeEntry(en.key, en.val, depth, siblings); err != nil {
			return err
		}
		siblings[en.key] = true
	}
	return nil
}

// encodeEntry emits one (key, val) pair at depth, dispatching on whether
// the value collapses to a dotted key, and otherwise on its kind (array,
// object, or scalar).
func (e *encoder) encodeEntry(key string, val Value, depth int, siblings map[string]bool) error {
	if e.collapse {
		if segments, leaf, ok := collapseChain(key, val, e.flattenDepth, siblings, e.rootLiteral); ok {
			return e.encodeCollapsed(segments, leaf, depth)
		}
	}

	switch val.Kind() {
	case KindArr:
		elems, _ := val.AsArr()
		return e.encodeArray(e.renderKey(key), depth, elems)
	case KindObj:
		if val.Len() == 0 {
			e.w.line(depth, e.renderKey(key)+":")
			return nil
		}
		e.w.line(depth, e.renderKey(key)+":")
		return e.encodeObjectBody(val, depth+1)
	default:
		e.w.line(depth, e.renderKey(key)+": "+e.scalarLiteral(val))
		return nil
	}
}

// encodeCollapsed emits a dotted-key chain produced by C5.
func (e *encoder) encodeCollapsed(segments []string, leaf Value, depth int) error {
	dotted := strings.Join(segments, ".")
	switch leaf.Kind() {
	case KindArr:
		elems, _ := leaf.AsArr()
		return e.encodeArray(dotted, depth, elems)
	case KindObj:
		if leaf.Len() == 0 {
			e.w.line(depth, dotted+":")
			return nil
		}
		e.w.line(depth, dotted+":")
		return e.encodeObjectBody(leaf, depth+1)
	default:
		e.w.line(depth, dotted+": "+e.scalarLiteral(leaf))
		return nil
	}
}

// encodeArray emits an array's header line at depth and, if needed, its
// children at depth+1, per C4's four-way shape classification. keyPrefix is
// "" for an unnamed (root or list-item) array.
func (e *encoder) encodeArray(keyPrefix string, depth int, elems []Value) error {
	shape, fields := analyzeShape(elems)

	switch shape {
	case shapeEmpty:
		e.w.line(depth, headerPrefix(keyPrefix)+"[0]")
		return nil
	case shapeInlinePrimitive:
		values := make([]string, len(elems))
		for i, v := range elems {
			values[i] = e.scalarLiteral(v)
		}
		e.w.line(depth, fmt.Sprintf("%s[%d]: %s", headerPrefix(keyPrefix), len(elems), strings.Join(values, string(e.delimiter))))
		return nil
	case shapeTabularUniform:
		renderedFields := make([]string, len(fields))
		for i, f := range fields {
			renderedFields[i] = e.renderKey(f)
		}
		e.w.line(depth, fmt.Sprintf("%s[%d]{%s}:", headerPrefix(keyPrefix), len(elems), strings.Join(renderedFields, string(e.delimiter))))
		for _, v := range elems {
			row := make([]string, len(fields))
			for i, f := range fields {
				row[i] = e.scalarLiteral(v.Key(f))
			}
			e.w.line(depth+1, strings.Join(row, string(e.delimiter)))
		}
		return nil
	default: // shapeList
		e.w.line(depth, fmt.Sprintf("%s[%d]:", headerPrefix(keyPrefix), len(elems)))
		for _, v := range elems {
			if err := e.encodeListItem(v, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
}

func headerPrefix(keyPrefix string) string {
	if keyPrefix == "" {
		return ""
	}
	return keyPrefix
}

// encodeListItem emits one "- " prefixed list entry. Obj and Arr items are
// rendered in an isolated sub-encoder first, then fused onto the dash line:
// the sub-block's first line joins the dash, its remaining lines re-emit
// one level deeper than the dash so none of the block is lost.
func (e *encoder) encodeListItem(v Value, depth int) error {
	indent := strings.Repeat(" ", depth*e.w.indentSize)
	switch v.Kind() {
	case KindObj:
		entries := v.entries()
		if len(entries) == 0 {
			e.w.line(depth, "-")
			return nil
		}
		sub := e.subEncoder()
		if err := sub.encodeObjectBody(v, 1); err != nil {
			return err
		}
		return e.fuseSubLines(indent, sub.w.Lines())
	case KindArr:
		elems, _ := v.AsArr()
		if len(elems) == 0 {
			e.w.line(depth, "- [0]")
			return nil
		}
		sub := e.subEncoder()
		if err := sub.encodeArray("", 0, elems); err != nil {
			return err
		}
		return e.fuseSubLines(indent, sub.w.Lines())
	default:
		e.w.line(depth, "- "+e.scalarLiteral(v))
		return nil
	}
}

// fuseSubLines joins a sub-encoder's rendered block onto a dash line: the
// first line follows "- ", the rest are prefixed with the dash's indent (the
// sub-block already places them at least one level deep).
func (e *encoder) fuseSubLines(indent string, subLines []string) error {
	e.w.lines = append(e.w.lines, indent+"- "+strings.TrimSpace(subLines[0]))
	for _, l := range subLines[1:] {
		e.w.lines = append(e.w.lines, indent+l)
	}
	return nil
}

// subEncoder creates a fresh encoder sharing e's delimiter and key-collapsing
// settings, used to render a nested block in isolation before fusing it onto
// a list item's dash line.
func (e *encoder) subEncoder() *encoder {
	return &encoder{
		w:            newWriter(e.w.indentSize),
		delimiter:    e.delimiter,
		collapse:     e.collapse,
		flattenDepth: e.flattenDepth,
		rootLiteral:  e.rootLiteral,
	}
}

// renderKey quotes key when C2's key-quoting rule requires it.
func (e *encoder) renderKey(key string) string {
	if needsKeyQuoting(key, e.delimiter, true) {
		return wrap(key)
	}
	return key
}

// scalarLiteral renders a primitive Value as its TOON literal.
func (e *encoder) scalarLiteral(v Value) string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		b, _ := v.AsBool()
		if b {
			return "true"
		}
		return "false"
	case KindNum:
		f, _ := v.AsNum()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case KindStr:
		s, _ := v.AsStr()
		if needsQuoting(s, e.delimiter) {
			return wrap(s)
		}
		return s
	default:
		return ""
	}
}
