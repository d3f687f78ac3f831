// Package ast defines the tlang syntax tree.
//
// The node set is closed: every statement and expression type lives in this
// file and implements the unexported marker methods, so type switches over
// Statement and Expr can be checked for completeness by reading one file.
// Nodes are not mutated after the parser returns them.
package ast

import (
	"path/filepath"
	"strings"
)

// Node is the interface for all AST nodes.
type Node interface {
	node()
}

// Statement is the interface for statement nodes.
type Statement interface {
	Node
	stmt()
	StmtOffset() int
}

// BaseStmt records where a statement starts, as a byte offset into the
// normalized source it was parsed from.
type BaseStmt struct {
	Offset int
}

func (b BaseStmt) StmtOffset() int { return b.Offset }

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	expr()
}

// Program is the root node.
type Program struct {
	Statements []Statement
	SourceFile string // path or display name of the source
	Source     string // normalized source text, used to resolve offsets
}

func (p *Program) node() {}

// --- statements ---

// Assign represents name = value;
type Assign struct {
	BaseStmt
	Name  string
	Value Expr
}

func (a *Assign) node() {}
func (a *Assign) stmt() {}

// ListIndexAssign represents name[index] = value;
type ListIndexAssign struct {
	BaseStmt
	Name  string
	Index Expr
	Value Expr
}

func (a *ListIndexAssign) node() {}
func (a *ListIndexAssign) stmt() {}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	BaseStmt
	Expression Expr
}

func (e *ExprStmt) node() {}
func (e *ExprStmt) stmt() {}

// Conditional represents if (cond) {..} [elif (cond) {..}] [else {..}].
// There is at most one elif branch; ElifCond is nil when it is absent.
type Conditional struct {
	BaseStmt
	Cond     Expr
	Body     []Statement
	ElifCond Expr
	ElifBody []Statement
	ElseBody []Statement
}

func (c *Conditional) node() {}
func (c *Conditional) stmt() {}

// WhileLoop represents while (cond) {..}.
type WhileLoop struct {
	BaseStmt
	Cond Expr
	Body []Statement
}

func (w *WhileLoop) node() {}
func (w *WhileLoop) stmt() {}

// ForLoop represents for (var = start to end) {..}. End is exclusive.
type ForLoop struct {
	BaseStmt
	Var   string
	Start Expr
	End   Expr
	Body  []Statement
}

func (f *ForLoop) node() {}
func (f *ForLoop) stmt() {}

// FunctionDef represents fun name(params) {..}. SourceFile names the
// program the definition came from so runtime errors inside the body can
// be located after the function was imported elsewhere.
type FunctionDef struct {
	BaseStmt
	Name       string
	Params     []string
	Body       []Statement
	SourceFile string
}

func (f *FunctionDef) node() {}
func (f *FunctionDef) stmt() {}

// ClassDef represents class Name {..}. The body is conventionally a list of
// FunctionDefs.
type ClassDef struct {
	BaseStmt
	Name string
	Body []Statement
}

func (c *ClassDef) node() {}
func (c *ClassDef) stmt() {}

// Methods returns the function definitions in the class body in order.
func (c *ClassDef) Methods() []*FunctionDef {
	var out []*FunctionDef
	for _, s := range c.Body {
		if fn, ok := s.(*FunctionDef); ok {
			out = append(out, fn)
		}
	}
	return out
}

// Method returns the last method definition called name.
func (c *ClassDef) Method(name string) (*FunctionDef, bool) {
	var found *FunctionDef
	for _, fn := range c.Methods() {
		if fn.Name == name {
			found = fn
		}
	}
	return found, found != nil
}

// ImportStatement represents import "path" [as alias];
type ImportStatement struct {
	BaseStmt
	Path  string
	Alias string // empty means the file stem
}

func (i *ImportStatement) node() {}
func (i *ImportStatement) stmt() {}

// Namespace returns the name the imported module is bound to.
func (i *ImportStatement) Namespace() string {
	if i.Alias != "" {
		return i.Alias
	}
	return Stem(i.Path)
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// --- nodes that are both statements and expressions ---

// Print represents out(value). As an expression it yields none.
type Print struct {
	BaseStmt
	Value Expr
}

func (p *Print) node() {}
func (p *Print) stmt() {}
func (p *Print) expr() {}

// Input represents input or input(prompt). Prompt is nil when absent.
type Input struct {
	BaseStmt
	Prompt Expr
}

func (i *Input) node() {}
func (i *Input) stmt() {}
func (i *Input) expr() {}

// --- expressions ---

// Number is an integer literal.
type Number struct {
	Value int
}

func (n *Number) node() {}
func (n *Number) expr() {}

// String is a string literal with its quotes removed.
type String struct {
	Value string
}

func (s *String) node() {}
func (s *String) expr() {}

// Variable is a name reference.
type Variable struct {
	Name string
}

func (v *Variable) node() {}
func (v *Variable) expr() {}

// BinOp represents left op right. Op is the operator spelling, e.g. "+"
// or "&&".
type BinOp struct {
	Left  Expr
	Op    string
	Right Expr
}

func (b *BinOp) node() {}
func (b *BinOp) expr() {}

// ListLiteral is [elem, ...].
type ListLiteral struct {
	Elements []Expr
}

func (l *ListLiteral) node() {}
func (l *ListLiteral) expr() {}

// ListIndex represents name[index].
type ListIndex struct {
	Name  string
	Index Expr
}

func (l *ListIndex) node() {}
func (l *ListIndex) expr() {}

// FunctionCall represents callee(args...). Callee is a *Variable or a
// *ModuleMemberAccess.
type FunctionCall struct {
	Callee Expr
	Args   []Expr
}

func (c *FunctionCall) node() {}
func (c *FunctionCall) expr() {}

// CalleeName returns the printable name of the call target.
func (c *FunctionCall) CalleeName() string {
	switch callee := c.Callee.(type) {
	case *Variable:
		return callee.Name
	case *ModuleMemberAccess:
		return callee.Target + "." + callee.Member
	}
	return "?"
}

// ModuleMemberAccess represents target.member, where target names a module,
// a class or a bound instance.
type ModuleMemberAccess struct {
	Target string
	Member string
}

func (m *ModuleMemberAccess) node() {}
func (m *ModuleMemberAccess) expr() {}

// ClassInstantiate represents Name(member, ...) for a declared class.
// An empty Members list selects every method.
type ClassInstantiate struct {
	Name    string
	Members []string
}

func (c *ClassInstantiate) node() {}
func (c *ClassInstantiate) expr() {}
