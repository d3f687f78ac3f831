package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tsegab/tlang/ast"
	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/doc"
	"github.com/tsegab/tlang/interp"
	"github.com/tsegab/tlang/lexer"
	"github.com/tsegab/tlang/modules"
	"github.com/tsegab/tlang/parser"
)

// errReported is returned by actions that already printed their error.
var errReported = errors.New("error reported")

// Streams are the standard streams a command reads and writes.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Execute runs the tlang CLI with the given version string.
// Import the builtin catalogs via blank imports before calling this
// function so they register via init().
func Execute(version string) {
	app := New(version, Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr})
	if err := app.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// New builds the command tree.
func New(version string, s Streams) *cli.Command {
	a := &app{streams: s}
	return &cli.Command{
		Name:                   "tlang",
		Usage:                  "A small bilingual scripting language",
		Version:                version,
		UseShortOptionHandling: true,
		Reader:                 s.Stdin,
		Writer:                 s.Stdout,
		ErrWriter:              s.Stderr,
		ArgsUsage:              "[file.tl]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Program to run; without it a REPL is started",
			},
			&cli.IntFlag{
				Name:    "max-depth",
				Usage:   "Maximum call depth",
				Value:   interp.DefaultMaxDepth,
				Sources: cli.EnvVars("TLANG_MAX_DEPTH"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Log interpreter activity to stderr",
				Sources: cli.EnvVars("TLANG_DEBUG"),
			},
		},
		// `tlang script.tl` is shorthand for `tlang run script.tl`.
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("file")
			if path == "" && cmd.NArg() > 0 {
				path = cmd.Args().First()
			}
			if path != "" {
				return a.runFile(cmd, path)
			}
			return a.repl(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Run a .tl file",
				ArgsUsage: "<file.tl>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() < 1 {
						return fmt.Errorf("usage: tlang run <file.tl>")
					}
					return a.runFile(cmd, cmd.Args().First())
				},
			},
			{
				Name:      "check",
				Usage:     "Parse and lint files, reporting every problem",
				ArgsUsage: "<file.tl>...",
				Action:    a.check,
			},
			{
				Name:      "tokens",
				Usage:     "Print the token stream of a file",
				ArgsUsage: "<file.tl>",
				Action:    a.tokens,
			},
			{
				Name:      "ast",
				Usage:     "Print the syntax tree of a file",
				ArgsUsage: "<file.tl>",
				Action:    a.dumpAST,
			},
			{
				Name:      "doc",
				Usage:     "Show documentation for builtins or a tlang file",
				ArgsUsage: "[module | builtin | file.tl | dir] [symbol]",
				Action:    a.doc,
			},
		},
	}
}

type app struct {
	streams Streams
}

func (a *app) logger(cmd *cli.Command) *slog.Logger {
	if !cmd.Bool("debug") {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(a.streams.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// color reports whether errors may be painted: stderr must be a terminal
// and NO_COLOR unset.
func (a *app) color() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := a.streams.Stderr.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// report renders err against the normalized source it refers to.
func (a *app) report(err error, name, src string) error {
	fmt.Fprint(a.streams.Stderr, diag.Render(err, name, src, a.color()))
	return errReported
}

func (a *app) interpreter(cmd *cli.Command, stdin io.Reader) *interp.Interpreter {
	return interp.New(interp.Options{
		Stdout:   a.streams.Stdout,
		Stdin:    stdin,
		MaxDepth: int(cmd.Int("max-depth")),
		Logger:   a.logger(cmd),
	})
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// runFile executes path from its own directory so relative imports and
// file builtins resolve next to the program.
func (a *app) runFile(cmd *cli.Command, path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.Chdir(dir); err != nil {
			return fmt.Errorf("changing to %s: %w", dir, err)
		}
	}
	name := filepath.Base(path)

	prog, err := parser.ParseSource(name, src)
	if err != nil {
		return a.report(err, name, lexer.Normalize(src))
	}
	in := a.interpreter(cmd, a.streams.Stdin)
	if err := in.Run(interp.NewEnvironment(), prog); err != nil {
		return a.report(err, name, prog.Source)
	}
	return nil
}

func (a *app) check(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: tlang check <file.tl>...")
	}
	var rep diag.Reporter
	for _, path := range cmd.Args().Slice() {
		src, err := readSource(path)
		if err != nil {
			rep.Add(path, err)
			continue
		}
		prog, err := parser.ParseSource(path, src)
		if err != nil {
			rep.Add(path, err)
			continue
		}
		loc := diag.NewLocator(path, prog.Source)
		for _, ce := range ast.Lint.RunAll(prog) {
			pos := loc.Position(ce.Offset)
			rep.Addf(path, pos.Line, pos.Column, "%s", ce.Error())
		}
	}
	if err := rep.Err(); err != nil {
		rep.WriteTo(a.streams.Stderr)
		fmt.Fprintf(a.streams.Stderr, "%d problem(s) found\n", rep.Len())
		return errReported
	}
	fmt.Fprintf(a.streams.Stdout, "%d file(s) ok\n", cmd.NArg())
	return nil
}

func (a *app) tokens(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: tlang tokens <file.tl>")
	}
	path := cmd.Args().First()
	src, err := readSource(path)
	if err != nil {
		return err
	}
	norm := lexer.Normalize(src)
	toks, err := lexer.Scan(norm)
	if err != nil {
		return a.report(err, path, norm)
	}
	loc := diag.NewLocator(path, norm)
	for _, t := range toks {
		pos := loc.Position(t.Pos)
		fmt.Fprintf(a.streams.Stdout, "%d:%d\t%s\n", pos.Line, pos.Column, t)
	}
	return nil
}

func (a *app) dumpAST(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: tlang ast <file.tl>")
	}
	path := cmd.Args().First()
	src, err := readSource(path)
	if err != nil {
		return err
	}
	prog, err := parser.ParseSource(path, src)
	if err != nil {
		return a.report(err, path, lexer.Normalize(src))
	}
	return ast.Dump(a.streams.Stdout, prog)
}

func (a *app) doc(ctx context.Context, cmd *cli.Command) error {
	out := a.streams.Stdout
	if cmd.NArg() == 0 {
		fmt.Fprint(out, doc.FormatAllModules())
		return nil
	}
	target := cmd.Args().First()
	if m, ok := modules.Get(target); ok {
		fmt.Fprint(out, doc.FormatModule(m))
		return nil
	}
	if f, ok := modules.Lookup(target); ok {
		fmt.Fprint(out, doc.FormatSymbol(f.Doc, doc.BuiltinSignature(f)))
		return nil
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("%s is not a module, builtin or file", target)
	}
	var fd *doc.FileDoc
	if info.IsDir() {
		fd, err = doc.ExtractDir(target)
	} else {
		fd, err = doc.ExtractFile(target)
	}
	if err != nil {
		return fmt.Errorf("extracting docs from %s: %w", target, err)
	}
	if cmd.NArg() > 1 {
		sym := cmd.Args().Get(1)
		docStr, sig, ok := doc.LookupSymbol(fd, sym)
		if !ok {
			return fmt.Errorf("%s: no symbol %q", target, sym)
		}
		fmt.Fprint(out, doc.FormatSymbol(docStr, sig))
		return nil
	}
	fmt.Fprint(out, doc.FormatFile(fd))
	return nil
}
