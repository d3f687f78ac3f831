// Package scanner provides string- and comment-boundary-aware scanning for
// the tlang normalization pass. It tracks the spans the lexer will later
// treat as string literals or comments, so that source rewrites can be
// limited to code.
package scanner

import "strings"

// spanKind tracks what the current byte belongs to.
type spanKind byte

const (
	spanCode spanKind = iota
	spanDouble
	spanSingle
	spanLineComment
	spanBlockComment
)

// CodeScanner iterates byte-by-byte over source text. A span is entered
// only when the lexer would match it at that position: a quote needs the
// same quote later on the same line, "~~" needs a closing "~~", and "#"
// runs to the end of the line. Unclosed quotes and markers stay code.
//
// InCode() is false for the whole span, delimiters included.
type CodeScanner struct {
	src  string
	pos  int
	kind spanKind
	end  int // offset of the last byte of the current non-code span
}

// New creates a CodeScanner for the given source text.
// Call Next() to advance to the first byte.
func New(src string) *CodeScanner {
	return &CodeScanner{src: src, pos: -1}
}

// Next advances to the next byte, updating span state.
// Returns the byte and true, or (0, false) at end of input.
func (s *CodeScanner) Next() (byte, bool) {
	s.pos++
	if s.pos >= len(s.src) {
		return 0, false
	}
	ch := s.src[s.pos]
	if s.kind != spanCode && s.pos > s.end {
		s.kind = spanCode
	}
	if s.kind == spanCode {
		s.enter()
	}
	return ch, true
}

// enter checks whether a string or comment span starts at pos.
func (s *CodeScanner) enter() {
	rest := s.src[s.pos:]
	switch {
	case strings.HasPrefix(rest, "~~"):
		if i := strings.Index(rest[2:], "~~"); i >= 0 {
			s.kind = spanBlockComment
			s.end = s.pos + 2 + i + 1
		}
	case rest[0] == '#':
		s.kind = spanLineComment
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			s.end = s.pos + i - 1
		} else {
			s.end = len(s.src) - 1
		}
	case rest[0] == '"' || rest[0] == '\'':
		q := rest[0]
		for i := 1; i < len(rest); i++ {
			if rest[i] == '\n' {
				return
			}
			if rest[i] == q {
				if q == '"' {
					s.kind = spanDouble
				} else {
					s.kind = spanSingle
				}
				s.end = s.pos + i
				return
			}
		}
	}
}

// InCode reports whether the current position is outside all strings and
// comments.
func (s *CodeScanner) InCode() bool { return s.kind == spanCode }

// SpanEnd returns the offset just past the current string or comment span,
// or Pos()+1 in code.
func (s *CodeScanner) SpanEnd() int {
	if s.kind == spanCode {
		return s.pos + 1
	}
	return s.end + 1
}

// Pos returns the current byte offset (the position of the last byte
// returned by Next). Returns -1 before the first call to Next.
func (s *CodeScanner) Pos() int { return s.pos }

// Skip advances past n bytes without returning them. Span state is updated
// for each skipped byte. Returns the number of bytes actually skipped.
func (s *CodeScanner) Skip(n int) int {
	skipped := 0
	for i := 0; i < n; i++ {
		if _, ok := s.Next(); !ok {
			break
		}
		skipped++
	}
	return skipped
}
