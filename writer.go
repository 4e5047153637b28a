package toon

import "strings"

// writer is an indent-aware line buffer. It accumulates (depth, content)
// pairs and flushes them into the final document text. A writer is created
// per Encode call and discarded.
type writer struct {
	indentSize int
	lines      []string
}

func newWriter(indentSize int) *writer {
	return &writer{indentSize: indentSize}
}

// line appends one output line at the given depth. Trailing whitespace on
// content is trimmed before indenting.
func (w *writer) line(depth int, content string) {
	trimmed := strings.TrimRight(content, " \t")
	if trimmed == "" {
		w.lines = append(w.lines, "")
		return
	}
	w.lines = append(w.lines, strings.Repeat(" ", depth*w.indentSize)+trimmed)
}

// String joins the buffered lines with '\n' and no trailing newline.
func (w *writer) String() string {
	return strings.Join(w.lines, "\n")
}

// Lines returns the buffered lines, one element per output line.
func (w *writer) Lines() []string {
	out := make([]string, len(w.lines))
	copy(out, w.lines)
	return out
}
