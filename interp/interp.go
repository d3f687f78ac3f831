// Package interp walks a tlang syntax tree.
//
// An Interpreter owns the input and output channels, the call depth and the
// module cache. Program state lives in an Environment that is passed to
// every evaluate and execute call, so one Interpreter can run several
// programs, and separate Interpreters can run in parallel.
package interp

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/tsegab/tlang/ast"
	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/parser"
)

// DefaultMaxDepth is the call depth limit used when Options.MaxDepth is
// zero.
const DefaultMaxDepth = 1000

// Options configures an Interpreter. Zero values select os.Stdout,
// os.Stdin, DefaultMaxDepth, the working directory and a discarding logger.
type Options struct {
	Stdout   io.Writer
	Stdin    io.Reader
	MaxDepth int
	// Dir is the directory imports of the main program resolve against.
	Dir    string
	Logger *slog.Logger
}

// Interpreter executes programs.
type Interpreter struct {
	out      io.Writer
	in       *bufio.Reader
	maxDepth int
	dir      string
	log      *slog.Logger

	depth int
	// file names the source of the statement being executed; runtime
	// errors are located against it.
	file     string
	locators map[string]*diag.Locator

	loadStack []string
	parsed    map[string]*ast.Program
	loaded    map[string]*Environment
	owners    map[*ast.FunctionDef]*Environment
}

// New returns an Interpreter configured by opts.
func New(opts Options) *Interpreter {
	in := &Interpreter{
		out:      opts.Stdout,
		maxDepth: opts.MaxDepth,
		dir:      opts.Dir,
		log:      opts.Logger,
		locators: make(map[string]*diag.Locator),
		parsed:   make(map[string]*ast.Program),
		loaded:   make(map[string]*Environment),
		owners:   make(map[*ast.FunctionDef]*Environment),
	}
	if in.out == nil {
		in.out = os.Stdout
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if br, ok := stdin.(*bufio.Reader); ok {
		in.in = br
	} else {
		in.in = bufio.NewReader(stdin)
	}
	if in.maxDepth <= 0 {
		in.maxDepth = DefaultMaxDepth
	}
	if in.log == nil {
		in.log = slog.New(slog.DiscardHandler)
	}
	return in
}

// Run executes prog against env. It stops at the first error.
func (i *Interpreter) Run(env *Environment, prog *ast.Program) error {
	i.locators[prog.SourceFile] = diag.NewLocator(prog.SourceFile, prog.Source)
	prev := i.file
	i.file = prog.SourceFile
	defer func() { i.file = prev }()

	i.log.Debug("run", "file", prog.SourceFile, "statements", len(prog.Statements))
	return i.execBlock(env, prog.Statements)
}

// RunSource parses src and runs it against env. The parsed program is
// returned even when execution fails, so callers can render errors
// against its normalized source.
func (i *Interpreter) RunSource(env *Environment, name, src string) (*ast.Program, error) {
	prog, err := parser.ParseSource(name, src)
	if err != nil {
		return nil, err
	}
	return prog, i.Run(env, prog)
}

// locate attaches the position of s to a runtime error that has none yet.
// Errors already carrying a position come from a more deeply nested
// statement and are left alone.
func (i *Interpreter) locate(err error, s ast.Statement) error {
	var re *diag.RuntimeError
	if !errors.As(err, &re) || re.HasPos() {
		return err
	}
	re.File = i.file
	re.Offset = s.StmtOffset()
	if loc, ok := i.locators[i.file]; ok {
		pos := loc.Position(re.Offset)
		re.Line, re.Col = pos.Line, pos.Column
	}
	return err
}
