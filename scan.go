package toon

import "strings"

// ParsedLine is one non-blank input line: its trimmed content, the column
// width of its leading indentation, the indentation's depth under the
// configured indent size, and its 1-based source line number.
type ParsedLine struct {
	Content    string
	Indent     int
	Depth      int
	LineNumber int
}

// Cursor is an immutable position over a scanned line sequence. Advancing
// returns a new Cursor rather than mutating the receiver.
type Cursor struct {
	lines      []ParsedLine
	blankLines []ParsedLine
	position   int
}

// scan splits input into ParsedLine records and returns a Cursor positioned
// at the start. strict rejects tabs in leading indentation and indentation
// widths that are not a multiple of indentSize; non-strict tolerates both
// (a tab counts as one space of indent). A single trailing newline ends the
// last line and does not produce a blank line.
func scan(input string, indentSize int, strict bool) (Cursor, error) {
	rawLines := strings.Split(input, "\n")
	if n := len(rawLines); n > 1 && rawLines[n-1] == "" {
		rawLines = rawLines[:n-1]
	}

	var lines, blanks []ParsedLine
	for i, raw := range rawLines {
		lineNo := i + 1
		trimmedTrailing := strings.TrimRight(raw, " \t\r")

		indent, hasTab, err := leadingIndent(trimmedTrailing)
		if err != nil {
			return Cursor{}, err
		}
		if hasTab && strict {
			return Cursor{}, &SyntaxError{
				Kind:       ErrTabsNotAllowed,
				Line:       lineNo,
				Column:     1,
				Content:    trimmedTrailing,
				Suggestion: "replace leading tabs with spaces",
			}
		}

		content := strings.TrimLeft(trimmedTrailing, " \t")
		pl := ParsedLine{Content: content, Indent: indent, LineNumber: lineNo}

		if content == "" {
			blanks = append(blanks, pl)
			continue
		}

		if indentSize > 0 && indent%indentSize != 0 {
			if strict {
				return Cursor{}, &SyntaxError{
					Kind:       ErrIndentNotMult,
					Line:       lineNo,
					Column:     indent + 1,
					Content:    content,
					Suggestion: "indent must be a multiple of the configured indent size",
				}
			}
		}
		if indentSize > 0 {
			pl.Depth = indent / indentSize
		}
		lines = append(lines, pl)
	}

	return Cursor{lines: lines, blankLines: blanks}, nil
}

// leadingIndent counts the indentation width of s: each leading space counts
// as one column; a leading tab counts as one column too (non-strict
// tolerance) but is flagged via hasTab so the caller can reject it in strict
// mode.
func leadingIndent(s string) (width int, hasTab bool, err error) {
	for _, c := range s {
		switch c {
		case ' ':
			width++
		case '\t':
			hasTab = true
			width++
		default:
			return width, hasTab, nil
		}
	}
	return width, hasTab, nil
}

// AtEnd reports whether the cursor has no more lines.
func (c Cursor) AtEnd() bool {
	return c.position >= len(c.lines)
}

// Peek returns the line at the current position without advancing.
func (c Cursor) Peek() (ParsedLine, bool) {
	if c.AtEnd() {
		return ParsedLine{}, false
	}
	return c.lines[c.position], true
}

// Next returns the current line and a Cursor advanced past it.
func (c Cursor) Next() (ParsedLine, Cursor, bool) {
	line, ok := c.Peek()
	if !ok {
		return ParsedLine{}, c, false
	}
	return line, c.Advance(1), true
}

// Advance returns a Cursor k positions further along.
func (c Cursor) Advance(k int) Cursor {
	c.position += k
	if c.position > len(c.lines) {
		c.position = len(c.lines)
	}
	return c
}

// PeekAtDepth returns the current line only if its depth equals d.
func (c Cursor) PeekAtDepth(d int) (ParsedLine, bool) {
	line, ok := c.Peek()
	if !ok || line.Depth != d {
		return ParsedLine{}, false
	}
	return line, true
}

// HasMoreAtDepth reports whether a line at depth d appears ahead of the
// cursor before any line shallower than d is reached.
func (c Cursor) HasMoreAtDepth(d int) bool {
	for i := c.position; i < len(c.lines); i++ {
		if c.lines[i].Depth < d {
			return false
		}
		if c.lines[i].Depth == d {
			return true
		}
	}
	return false
}
