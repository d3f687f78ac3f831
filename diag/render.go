package diag

import (
	"errors"
	"fmt"
	"strings"
)

const (
	colorRed   = "\033[31m"
	colorReset = "\033[0m"
)

// Render formats err for the user. Lexical, parse and runtime errors that
// belong to the source called name get a header plus a caret snippet of src
// with one line of context on each side:
//
//	PARSE ERROR in main.tl at 3:12: expected SEMICOLON, found IDENTIFIER("y")
//
//	   2 | x = 1;
//	   3 | out(x) y
//	     |        ^
//	   4 | z = 2;
//
// Any other error renders as "error: <message>". With color set, the header
// is printed in red.
func Render(err error, name, src string, color bool) string {
	var (
		lexErr   *LexError
		parseErr *ParseError
		rtErr    *RuntimeError
	)
	// A runtime error can wrap the lex or parse error of an imported file,
	// which is positioned in that file, not in src.
	switch {
	case errors.As(err, &rtErr):
		header := paint("RUNTIME ERROR", color)
		if rtErr.Line == 0 {
			return fmt.Sprintf("%s: %s\n", header, rtErr.Message())
		}
		if rtErr.File != name {
			return fmt.Sprintf("%s in %s at %d:%d: %s\n", header, rtErr.File, rtErr.Line, rtErr.Col, rtErr.Message())
		}
		return snippet(src, header, name, rtErr.Line, rtErr.Col, rtErr.Message())
	case errors.As(err, &lexErr):
		return snippet(src, paint("LEXICAL ERROR", color), name, lexErr.Line, lexErr.Col, lexErr.Message())
	case errors.As(err, &parseErr):
		return snippet(src, paint("PARSE ERROR", color), name, parseErr.Line, parseErr.Col, parseErr.Message())
	default:
		return fmt.Sprintf("%s: %v\n", paint("error", color), err)
	}
}

func paint(s string, color bool) string {
	if !color {
		return s
	}
	return colorRed + s + colorReset
}

// snippet builds the header and caret block. Coordinates are 1-based and
// clamped to the source bounds.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	text := lines[line-1]
	fmt.Fprintf(&b, "%4d | %s\n", line, text)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad(text, col)))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

// caretPad converts a 1-based byte column into the number of runes before
// it, so the caret lines up under multi-byte characters.
func caretPad(text string, col int) int {
	n := col - 1
	if n > len(text) {
		n = len(text)
	}
	return len([]rune(text[:n]))
}
