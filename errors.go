package toon

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Wrap one of these with SyntaxError (or test with
// errors.Is against the return value of Decode/Encode) rather than matching
// on message text.
var (
	ErrType            = errors.New("toon: type error")
	ErrParse           = errors.New("toon: parse error")
	ErrTabsNotAllowed  = errors.New("toon: tabs not allowed in strict mode")
	ErrIndentNotMult   = errors.New("toon: indent is not a multiple of the indent size")
	ErrBadHeader       = errors.New("toon: malformed array header")
	ErrLengthMismatch  = errors.New("toon: array length mismatch")
	ErrBadEscape       = errors.New("toon: invalid escape sequence")
	ErrBadNumber       = errors.New("toon: invalid numeric token")
	ErrExpectedValue   = errors.New("toon: expected a value")
	ErrInvalidListItem = errors.New("toon: invalid list item")
	ErrDepthExceeded   = errors.New("toon: maximum nesting depth exceeded")
	ErrExpansionConfl  = errors.New("toon: path expansion conflict")
	ErrIncomplete      = errors.New("toon: incomplete event stream")
)

// SyntaxError is returned by decode-time failures. It carries enough detail
// to build a human-readable diagnostic: the 1-based line and column, the raw
// line content, and a short suggestion. Line and Column are 0 when the
// failure is not attributed to one source line (for example a declared
// array length that the following rows do not meet).
type SyntaxError struct {
	Kind       error
	Line       int
	Column     int
	Content    string
	Suggestion string
}

func (e *SyntaxError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%d:%d: %s (%s)", e.Line, e.Column, e.Kind, e.Suggestion)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Kind)
}

func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

func newSyntaxError(kind error, line ParsedLine, suggestion string) *SyntaxError {
	return &SyntaxError{
		Kind:       kind,
		Line:       line.LineNumber,
		Column:     line.Indent + 1,
		Content:    line.Content,
		Suggestion: suggestion,
	}
}
