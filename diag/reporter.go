package diag

import (
	"errors"
	"fmt"
	gotoken "go/token"
	"io"

	mscanner "modernc.org/scanner"
)

// Reporter collects positioned errors from several sources instead of
// stopping at the first one. The run path never uses it.
type Reporter struct {
	errs mscanner.ErrList
}

// Add records err against file. Errors without a position are recorded at
// line 0 with the file name folded into the message.
func (r *Reporter) Add(file string, err error) {
	if err == nil {
		return
	}
	pos := gotoken.Position{Filename: file}
	msg := err.Error()

	var (
		lexErr   *LexError
		parseErr *ParseError
		rtErr    *RuntimeError
	)
	switch {
	case errors.As(err, &rtErr):
		if rtErr.File != "" {
			pos.Filename = rtErr.File
		}
		if rtErr.HasPos() {
			pos.Offset, pos.Line, pos.Column = rtErr.Offset, rtErr.Line, rtErr.Col
		}
		msg = rtErr.Message()
	case errors.As(err, &lexErr):
		pos.Offset, pos.Line, pos.Column = lexErr.Offset, lexErr.Line, lexErr.Col
		msg = lexErr.Message()
	case errors.As(err, &parseErr):
		pos.Offset, pos.Line, pos.Column = parseErr.Offset, parseErr.Line, parseErr.Col
		msg = parseErr.Message()
	}
	if pos.Line == 0 && pos.Filename != "" {
		msg = pos.Filename + ": " + msg
	}
	r.errs.AddErr(pos, "%s", msg)
}

// Addf records a message at an explicit location.
func (r *Reporter) Addf(file string, line, col int, format string, args ...any) {
	r.errs.AddErr(gotoken.Position{Filename: file, Line: line, Column: col}, format, args...)
}

// Len returns the number of recorded errors.
func (r *Reporter) Len() int { return len(r.errs) }

// Err returns the collected errors as a single error, or nil.
func (r *Reporter) Err() error { return r.errs.Err() }

// WriteTo writes one line per recorded error.
func (r *Reporter) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range r.errs {
		n, err := fmt.Fprintln(w, e.Error())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
