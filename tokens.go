package toon

import (
	"strconv"
	"strings"
)

// keyToken is the result of parsing a bare or quoted key.
type keyToken struct {
	Key       string
	WasQuoted bool
}

// parseKeyToken splits a quoted-or-bare key token.
func parseKeyToken(raw string, strict bool) (keyToken, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
		inner, err := unescapeQuoted(trimmed[1:len(trimmed)-1], strict)
		if err != nil {
			return keyToken{}, err
		}
		return keyToken{Key: inner, WasQuoted: true}, nil
	}
	return keyToken{Key: trimmed}, nil
}

// ArrayHeader is the parsed form of an array header line: an optional key
// prefix, the declared length, the active delimiter, an optional tabular
// field list, and any inline value list text.
type ArrayHeader struct {
	Key           string
	HasKey        bool
	KeyWasQuoted  bool
	Length        int
	Delimiter     byte
	Fields        []string
	HasFields     bool
	InlineValues  string
	HasInline     bool
}

// parseArrayHeaderLine parses a line of the form
// [key?] '[' N ']' ('{' f1 ',' f2 ... '}')? ':' (SP values)?
// A missing ':' is accepted. The delimiter is read off the field list when
// there is one, otherwise off the inline values (see detectDelimiter);
// defaultDelim is the fallback when neither shows a tab or pipe.
func parseArrayHeaderLine(content string, defaultDelim byte, strict bool) (ArrayHeader, bool, error) {
	open := unquotedIndexByte(content, '[')
	if open < 0 {
		return ArrayHeader{}, false, nil
	}

	var hdr ArrayHeader
	if open > 0 {
		kt, err := parseKeyToken(content[:open], strict)
		if err != nil {
			return ArrayHeader{}, false, err
		}
		hdr.Key = kt.Key
		hdr.KeyWasQuoted = kt.WasQuoted
		hdr.HasKey = true
	}

	close := strings.IndexByte(content[open:], ']')
	if close < 0 {
		return ArrayHeader{}, false, nil
	}
	close += open

	lengthStr := content[open+1 : close]
	if lengthStr == "" {
		return ArrayHeader{}, true, &SyntaxError{Kind: ErrBadHeader, Suggestion: "array header brackets must contain a length"}
	}
	n, err := strconv.Atoi(lengthStr)
	if err != nil || n < 0 {
		return ArrayHeader{}, true, &SyntaxError{Kind: ErrBadHeader, Content: content, Suggestion: "array length must be a non-negative integer"}
	}
	hdr.Length = n
	hdr.Delimiter = defaultDelim

	rest := content[close+1:]

	if strings.HasPrefix(rest, "{") {
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return ArrayHeader{}, true, &SyntaxError{Kind: ErrBadHeader, Content: content, Suggestion: "unterminated field list"}
		}
		fieldsPart := rest[1:end]
		delim := detectDelimiter(fieldsPart, defaultDelim)
		hdr.Delimiter = delim
		fieldRaw := splitOutsideQuotes(fieldsPart, delim)
		fields := make([]string, 0, len(fieldRaw))
		for _, f := range fieldRaw {
			kt, err := parseKeyToken(strings.TrimSpace(f), strict)
			if err != nil {
				return ArrayHeader{}, true, err
			}
			fields = append(fields, kt.Key)
		}
		hdr.Fields = fields
		hdr.HasFields = true
		rest = rest[end+1:]
	}

	rest = strings.TrimPrefix(rest, ":")
	rest = strings.TrimPrefix(rest, " ")
	if rest != "" {
		hdr.InlineValues = rest
		hdr.HasInline = true
		if !hdr.HasFields {
			hdr.Delimiter = detectDelimiter(rest, defaultDelim)
		}
	}

	return hdr, true, nil
}

// detectDelimiter picks whichever of TOON's three delimiter characters
// actually appears in s (tab takes priority, then pipe), falling back to
// fallback. Decoding has no separate delimiter option; the active delimiter
// for a given header is read off its own bracket/inline content instead.
func detectDelimiter(s string, fallback byte) byte {
	if strings.ContainsRune(s, '\t') {
		return '\t'
	}
	if unquotedIndexByte(s, '|') >= 0 {
		return '|'
	}
	return fallback
}

// primitiveToken classifies a single scalar token into a Value.
func primitiveToken(s string, strict bool) (Value, error) {
	switch s {
	case "null":
		return Null(), nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if numericRE.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			if strict {
				return Value{}, &SyntaxError{Kind: ErrBadNumber, Content: s}
			}
			return Str(s), nil
		}
		return Num(f), nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		inner, err := unescapeQuoted(s[1:len(s)-1], strict)
		if err != nil {
			return Value{}, err
		}
		return Str(inner), nil
	}
	return Str(s), nil
}

// delimitedValues splits s on d outside double-quoted runs, trimming
// surrounding whitespace from each token.
func delimitedValues(s string, d byte) []string {
	parts := splitOutsideQuotes(s, d)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// splitOutsideQuotes splits s on every occurrence of d that lies outside a
// double-quoted run.
func splitOutsideQuotes(s string, d byte) []string {
	var parts []string
	start := 0
	inQuotes := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			if i == 0 || s[i-1] != '\\' {
				inQuotes = !inQuotes
			}
		case d:
			if !inQuotes {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// unquotedIndexByte returns the first index of c in s outside any
// double-quoted run, or -1.
func unquotedIndexByte(s string, c byte) int {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			if i == 0 || s[i-1] != '\\' {
				inQuotes = !inQuotes
			}
		case c:
			if !inQuotes {
				return i
			}
		}
	}
	return -1
}
