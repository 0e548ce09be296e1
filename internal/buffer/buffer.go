package buffer

import "strings"

// TextBuffer accumulates output fragments and joins them once at the end.
type TextBuffer struct {
	parts []string
	size  int
}

// New creates a new TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{
		parts: make([]string, 0, 8),
	}
}

// Write appends text to the buffer. Empty strings are dropped.
func (tb *TextBuffer) Write(text string) {
	if text == "" {
		return
	}
	tb.parts = append(tb.parts, text)
	tb.size += len(text)
}

// WriteAll appends every fragment in order.
func (tb *TextBuffer) WriteAll(texts ...string) {
	for _, t := range texts {
		tb.Write(t)
	}
}

// Len returns the accumulated length in bytes.
func (tb *TextBuffer) Len() int {
	return tb.size
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	switch len(tb.parts) {
	case 0:
		return ""
	case 1:
		return tb.parts[0]
	}
	var b strings.Builder
	b.Grow(tb.size)
	for _, p := range tb.parts {
		b.WriteString(p)
	}
	return b.String()
}
