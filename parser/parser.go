// Package parser builds a tlang syntax tree from a token stream.
//
// The parser is recursive descent with one token of lookahead. The only
// place it backtracks is the statement that starts with an identifier: it
// marks the cursor, tries to read an assignment target followed by '=',
// and rewinds to the mark to read an expression statement when that fails.
package parser

import (
	"github.com/tsegab/tlang/ast"
	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/lexer"
	"github.com/tsegab/tlang/token"
)

// Parser holds the state of one parse. The zero value is not usable; use
// Parse or ParseSource.
type Parser struct {
	name    string
	src     string
	loc     *diag.Locator
	toks    []token.Token
	pos     int
	classes map[string]bool
}

// Parse parses a token stream produced by the lexer. Without the source
// text, parse errors carry token indexes and offsets but no line/column.
func Parse(name string, toks []token.Token) (*ast.Program, error) {
	p := &Parser{name: name, toks: toks, classes: make(map[string]bool)}
	return p.program()
}

// ParseSource normalizes and tokenizes src, then parses it. The returned
// program keeps the normalized text so offsets can be resolved later.
func ParseSource(name, src string) (*ast.Program, error) {
	norm := lexer.Normalize(src)
	toks, err := lexer.Scan(norm)
	if err != nil {
		return nil, err
	}
	p := &Parser{
		name:    name,
		src:     norm,
		loc:     diag.NewLocator(name, norm),
		toks:    toks,
		classes: make(map[string]bool),
	}
	return p.program()
}

func (p *Parser) program() (*ast.Program, error) {
	prog := &ast.Program{SourceFile: p.name, Source: p.src}
	for !p.atEnd() {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, s)
	}
	return prog, nil
}

// --- cursor ---

func (p *Parser) atEnd() bool { return p.pos >= len(p.toks) }

// cur returns the current token, or an EOF token past the end.
func (p *Parser) cur() token.Token {
	if p.atEnd() {
		return token.Token{Kind: token.EOF, Pos: p.endOffset()}
	}
	return p.toks[p.pos]
}

func (p *Parser) is(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) endOffset() int {
	if p.src != "" {
		return len(p.src)
	}
	if n := len(p.toks); n > 0 {
		last := p.toks[n-1]
		return last.Pos + len(last.Lit)
	}
	return 0
}

// mark and rewind implement the bounded backtracking of assignment
// statements.
func (p *Parser) mark() int       { return p.pos }
func (p *Parser) rewind(mark int) { p.pos = mark }

// accept consumes the current token when it has kind k.
func (p *Parser) accept(k token.Kind) bool {
	if p.is(k) {
		p.pos++
		return true
	}
	return false
}

// expect consumes a token of kind k and returns it.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	t := p.cur()
	if t.Kind != k {
		return t, p.errorf(k.String())
	}
	p.pos++
	return t, nil
}

// errorf reports that expected was wanted at the current token.
func (p *Parser) errorf(expected string) error {
	t := p.cur()
	err := &diag.ParseError{Expected: expected, Found: t, Index: p.pos, Offset: t.Pos}
	if p.loc != nil {
		pos := p.loc.Position(t.Pos)
		err.Line, err.Col = pos.Line, pos.Column
	}
	return err
}

// --- statements ---

func (p *Parser) statement() (ast.Statement, error) {
	switch p.cur().Kind {
	case token.PRINT:
		return p.printStmt()
	case token.INPUT:
		return p.inputStmt()
	case token.IF:
		return p.conditional()
	case token.WHILE:
		return p.whileLoop()
	case token.FOR:
		return p.forLoop()
	case token.FUN:
		return p.functionDef()
	case token.CLASS:
		return p.classDef()
	case token.IMPORT:
		return p.importStmt()
	case token.IDENT:
		return p.assignOrExpr()
	case token.LPAREN:
		return p.exprStmt()
	}
	return nil, p.errorf("statement")
}

// block parses statements up to a closing brace, which is consumed. The end
// of input also closes a block.
func (p *Parser) block() ([]ast.Statement, error) {
	stmts := []ast.Statement{}
	for !p.atEnd() && !p.is(token.RBRACE) {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.accept(token.RBRACE)
	return stmts, nil
}

// openBlock expects '{' and parses the block after it.
func (p *Parser) openBlock() ([]ast.Statement, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	return p.block()
}

func (p *Parser) printStmt() (ast.Statement, error) {
	pr, err := p.printExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return pr, nil
}

func (p *Parser) inputStmt() (ast.Statement, error) {
	in, err := p.inputExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return in, nil
}

func (p *Parser) conditional() (ast.Statement, error) {
	start := p.cur().Pos
	p.pos++ // IF
	cond, err := p.parenLogical()
	if err != nil {
		return nil, err
	}
	body, err := p.openBlock()
	if err != nil {
		return nil, err
	}
	c := &ast.Conditional{BaseStmt: ast.BaseStmt{Offset: start}, Cond: cond, Body: body}

	if p.accept(token.ELSEIF) {
		if c.ElifCond, err = p.parenLogical(); err != nil {
			return nil, err
		}
		if c.ElifBody, err = p.openBlock(); err != nil {
			return nil, err
		}
	}
	if p.accept(token.ELSE) {
		if c.ElseBody, err = p.openBlock(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (p *Parser) whileLoop() (ast.Statement, error) {
	start := p.cur().Pos
	p.pos++ // WHILE
	cond, err := p.parenLogical()
	if err != nil {
		return nil, err
	}
	body, err := p.openBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileLoop{BaseStmt: ast.BaseStmt{Offset: start}, Cond: cond, Body: body}, nil
}

// forLoop parses for (i = start to end) {..}; "from" may replace '='.
func (p *Parser) forLoop() (ast.Statement, error) {
	start := p.cur().Pos
	p.pos++ // FOR
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	v, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if !p.accept(token.ASSIGN) && !p.accept(token.FROM) {
		return nil, p.errorf("EQUAL or FROM")
	}
	from, err := p.logical()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TO); err != nil {
		return nil, err
	}
	to, err := p.logical()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.openBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForLoop{BaseStmt: ast.BaseStmt{Offset: start}, Var: v.Lit, Start: from, End: to, Body: body}, nil
}

func (p *Parser) functionDef() (ast.Statement, error) {
	start := p.cur().Pos
	p.pos++ // FUN
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	body, err := p.openBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef{
		BaseStmt:   ast.BaseStmt{Offset: start},
		Name:       name.Lit,
		Params:     params,
		Body:       body,
		SourceFile: p.name,
	}, nil
}

// paramList parses '(' [IDENT (',' IDENT)*] ')'.
func (p *Parser) paramList() ([]string, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	params := []string{}
	if p.accept(token.RPAREN) {
		return params, nil
	}
	for {
		id, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, id.Lit)
		if !p.accept(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) classDef() (ast.Statement, error) {
	start := p.cur().Pos
	p.pos++ // CLASS
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	p.classes[name.Lit] = true
	body, err := p.openBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ClassDef{BaseStmt: ast.BaseStmt{Offset: start}, Name: name.Lit, Body: body}, nil
}

// importStmt parses import "path" [as alias]; a bare identifier may name
// the path.
func (p *Parser) importStmt() (ast.Statement, error) {
	start := p.cur().Pos
	p.pos++ // IMPORT
	t := p.cur()
	if t.Kind != token.STRING && t.Kind != token.IDENT {
		return nil, p.errorf("STRING or IDENTIFIER")
	}
	p.pos++
	imp := &ast.ImportStatement{BaseStmt: ast.BaseStmt{Offset: start}, Path: t.Lit}
	if p.accept(token.AS) {
		alias, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		imp.Alias = alias.Lit
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return imp, nil
}

// assignOrExpr handles the identifier-led statements. The target is tried
// first; only after '=' is the statement committed to being an assignment.
func (p *Parser) assignOrExpr() (ast.Statement, error) {
	m := p.mark()
	name, index, ok := p.tryTarget()
	if !ok {
		p.rewind(m)
		return p.exprStmt()
	}
	start := p.toks[m].Pos
	value, err := p.logical()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	if index != nil {
		return &ast.ListIndexAssign{BaseStmt: ast.BaseStmt{Offset: start}, Name: name, Index: index, Value: value}, nil
	}
	return &ast.Assign{BaseStmt: ast.BaseStmt{Offset: start}, Name: name, Value: value}, nil
}

// tryTarget reads IDENT ['[' logical ']'] '=' without reporting errors.
// On success the cursor is past '='.
func (p *Parser) tryTarget() (string, ast.Expr, bool) {
	id := p.cur()
	if id.Kind != token.IDENT {
		return "", nil, false
	}
	p.pos++
	var index ast.Expr
	if p.accept(token.LBRACKET) {
		idx, err := p.logical()
		if err != nil || !p.accept(token.RBRACKET) {
			return "", nil, false
		}
		index = idx
	}
	if !p.accept(token.ASSIGN) {
		return "", nil, false
	}
	return id.Lit, index, true
}

func (p *Parser) exprStmt() (ast.Statement, error) {
	start := p.cur().Pos
	e, err := p.logical()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{BaseStmt: ast.BaseStmt{Offset: start}, Expression: e}, nil
}
