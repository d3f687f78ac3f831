package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tsegab/tlang/interp"
	"github.com/tsegab/tlang/lexer"
)

const banner = "tlang %s. Type a statement; Ctrl-D exits.\n"

// interactive reports whether r is a terminal.
func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// repl executes one line at a time against a session-long environment.
// Errors are reported and the session continues. The banner and prompt
// are only shown on a terminal.
func (a *app) repl(cmd *cli.Command) error {
	tty := interactive(a.streams.Stdin)
	stdin := bufio.NewReader(a.streams.Stdin)
	in := a.interpreter(cmd, stdin)
	env := interp.NewEnvironment()

	if tty {
		fmt.Fprintf(a.streams.Stdout, banner, cmd.Root().Version)
	}
	for n := 1; ; n++ {
		if tty {
			fmt.Fprint(a.streams.Stdout, ">>> ")
		}
		line, err := stdin.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading input: %w", err)
		}
		if strings.TrimSpace(line) != "" {
			name := fmt.Sprintf("<stdin:%d>", n)
			prog, runErr := in.RunSource(env, name, line)
			if runErr != nil {
				src := lexer.Normalize(line)
				if prog != nil {
					src = prog.Source
				}
				a.report(runErr, name, src)
			}
		}
		if err != nil {
			if tty {
				fmt.Fprintln(a.streams.Stdout)
			}
			return nil
		}
	}
}
