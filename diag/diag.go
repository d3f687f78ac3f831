// Package diag defines the tlang error taxonomy: lexical, parse and runtime
// errors, the positions they carry, and their user-facing rendering.
//
// Every stage is fail-fast: the first error aborts the run. Reporter is the
// one place where errors are collected instead, and only tooling such as
// `tlang check` uses it.
package diag

import (
	"errors"
	"fmt"

	"github.com/tsegab/tlang/token"
)

// Kind is the sub-kind of a RuntimeError.
type Kind int

const (
	UndefinedName Kind = iota + 1
	UndefinedMember
	ArityMismatch
	NotCallable
	IndexOutOfRange
	UnknownOperator
	TypeMismatch
	DivisionByZero
	EndOfInput
	ImportCycle
	ImportFailed
	IOError
	RecursionLimit
)

var kindNames = map[Kind]string{
	UndefinedName:   "UndefinedName",
	UndefinedMember: "UndefinedMember",
	ArityMismatch:   "ArityMismatch",
	NotCallable:     "NotCallable",
	IndexOutOfRange: "IndexOutOfRange",
	UnknownOperator: "UnknownOperator",
	TypeMismatch:    "TypeMismatch",
	DivisionByZero:  "DivisionByZero",
	EndOfInput:      "EndOfInput",
	ImportCycle:     "ImportCycle",
	ImportFailed:    "ImportFailed",
	IOError:         "IOError",
	RecursionLimit:  "RecursionLimit",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name {
			return k, true
		}
	}
	return 0, false
}

// LexError reports the first character no token rule matched.
// Offset is a byte offset into the normalized source; Line and Col are
// 1-based.
type LexError struct {
	Char   rune
	Offset int
	Line   int
	Col    int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message())
}

// Message returns the error text without position.
func (e *LexError) Message() string {
	return fmt.Sprintf("unexpected character %q", e.Char)
}

// ParseError reports a structural violation: the parser expected one thing
// and found another. Found.Kind == token.EOF means the input ended early.
// Index is the position in the token stream.
type ParseError struct {
	Expected string
	Found    token.Token
	Index    int
	Offset   int
	Line     int
	Col      int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message())
	}
	return fmt.Sprintf("token %d: %s", e.Index, e.Message())
}

// Message returns the error text without position.
func (e *ParseError) Message() string {
	if e.Found.Kind == token.EOF {
		if e.Expected == "" {
			return "unexpected end of input"
		}
		return fmt.Sprintf("unexpected end of input, expected %s", e.Expected)
	}
	if e.Expected == "" {
		return fmt.Sprintf("unexpected token %s", e.Found)
	}
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
}

// UnexpectedEOF reports whether the input ended before the parse finished.
func (e *ParseError) UnexpectedEOF() bool { return e.Found.Kind == token.EOF }

// RuntimeError is raised while evaluating or executing the AST. File and
// Offset locate the innermost statement that was executing; Offset is -1
// until the executor attaches a position. Err, when set, is the underlying
// cause, such as the parse error of an imported file.
type RuntimeError struct {
	Kind   Kind
	Msg    string
	File   string
	Offset int
	Line   int
	Col    int
	Err    error
}

// Runtimef creates a RuntimeError without position.
func Runtimef(kind Kind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...), Offset: -1}
}

// Wrapf creates a RuntimeError caused by err.
func Wrapf(kind Kind, err error, format string, args ...any) *RuntimeError {
	re := Runtimef(kind, format, args...)
	re.Err = err
	return re
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message())
	}
	return e.Message()
}

// Message returns the error text without position.
func (e *RuntimeError) Message() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// HasPos reports whether a position has been attached.
func (e *RuntimeError) HasPos() bool { return e.Offset >= 0 }

// IsKind reports whether err wraps a RuntimeError of the given kind.
func IsKind(err error, kind Kind) bool {
	var re *RuntimeError
	return errors.As(err, &re) && re.Kind == kind
}

// KindOf returns the runtime kind of err, or 0 when err is not a
// RuntimeError.
func KindOf(err error) Kind {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}
