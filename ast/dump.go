package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented, one-node-per-line rendering of n to w.
func Dump(w io.Writer, n Node) error {
	d := &dumper{w: w}
	d.node(n, 0)
	return d.err
}

// DumpString returns the Dump rendering of n.
func DumpString(n Node) string {
	var b strings.Builder
	_ = Dump(&b, n)
	return b.String()
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) line(depth int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *dumper) block(label string, stmts []Statement, depth int) {
	d.line(depth, "%s:", label)
	for _, s := range stmts {
		d.node(s, depth+1)
	}
}

func (d *dumper) node(n Node, depth int) {
	switch n := n.(type) {
	case *Program:
		d.line(depth, "Program %s", n.SourceFile)
		for _, s := range n.Statements {
			d.node(s, depth+1)
		}
	case *Assign:
		d.line(depth, "Assign %s", n.Name)
		d.node(n.Value, depth+1)
	case *ListIndexAssign:
		d.line(depth, "ListIndexAssign %s", n.Name)
		d.node(n.Index, depth+1)
		d.node(n.Value, depth+1)
	case *ExprStmt:
		d.line(depth, "ExprStmt")
		d.node(n.Expression, depth+1)
	case *Conditional:
		d.line(depth, "Conditional")
		d.node(n.Cond, depth+1)
		d.block("then", n.Body, depth+1)
		if n.ElifCond != nil {
			d.line(depth+1, "elif:")
			d.node(n.ElifCond, depth+2)
			d.block("then", n.ElifBody, depth+1)
		}
		if n.ElseBody != nil {
			d.block("else", n.ElseBody, depth+1)
		}
	case *WhileLoop:
		d.line(depth, "WhileLoop")
		d.node(n.Cond, depth+1)
		d.block("body", n.Body, depth+1)
	case *ForLoop:
		d.line(depth, "ForLoop %s", n.Var)
		d.node(n.Start, depth+1)
		d.node(n.End, depth+1)
		d.block("body", n.Body, depth+1)
	case *FunctionDef:
		d.line(depth, "FunctionDef %s(%s)", n.Name, strings.Join(n.Params, ", "))
		for _, s := range n.Body {
			d.node(s, depth+1)
		}
	case *ClassDef:
		d.line(depth, "ClassDef %s", n.Name)
		for _, s := range n.Body {
			d.node(s, depth+1)
		}
	case *ImportStatement:
		if n.Alias != "" {
			d.line(depth, "Import %s as %s", strconv.Quote(n.Path), n.Alias)
		} else {
			d.line(depth, "Import %s", strconv.Quote(n.Path))
		}
	case *Print:
		d.line(depth, "Print")
		d.node(n.Value, depth+1)
	case *Input:
		d.line(depth, "Input")
		if n.Prompt != nil {
			d.node(n.Prompt, depth+1)
		}
	case *Number:
		d.line(depth, "Number %d", n.Value)
	case *String:
		d.line(depth, "String %s", strconv.Quote(n.Value))
	case *Variable:
		d.line(depth, "Variable %s", n.Name)
	case *BinOp:
		d.line(depth, "BinOp %s", n.Op)
		d.node(n.Left, depth+1)
		d.node(n.Right, depth+1)
	case *ListLiteral:
		d.line(depth, "ListLiteral")
		for _, e := range n.Elements {
			d.node(e, depth+1)
		}
	case *ListIndex:
		d.line(depth, "ListIndex %s", n.Name)
		d.node(n.Index, depth+1)
	case *FunctionCall:
		d.line(depth, "FunctionCall %s", n.CalleeName())
		for _, a := range n.Args {
			d.node(a, depth+1)
		}
	case *ModuleMemberAccess:
		d.line(depth, "ModuleMemberAccess %s.%s", n.Target, n.Member)
	case *ClassInstantiate:
		d.line(depth, "ClassInstantiate %s(%s)", n.Name, strings.Join(n.Members, ", "))
	default:
		d.line(depth, "%T", n)
	}
}
