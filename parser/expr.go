package parser

import (
	"strconv"

	"github.com/tsegab/tlang/ast"
	"github.com/tsegab/tlang/token"
)

var comparisonOps = map[token.Kind]bool{
	token.EQ:  true,
	token.NEQ: true,
	token.GT:  true,
	token.LT:  true,
	token.GTE: true,
	token.LTE: true,
}

// logical := comparison ((AND|OR) comparison)*
func (p *Parser) logical() (ast.Expr, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.is(token.AND) || p.is(token.OR) {
		op := p.cur().Lit
		p.pos++
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// comparison := expression [cmp expression]. Chains such as a < b < c are
// rejected.
func (p *Parser) comparison() (ast.Expr, error) {
	left, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !comparisonOps[p.cur().Kind] {
		return left, nil
	}
	op := p.cur().Lit
	p.pos++
	right, err := p.expression()
	if err != nil {
		return nil, err
	}
	if comparisonOps[p.cur().Kind] {
		return nil, p.errorf("a single comparison")
	}
	return &ast.BinOp{Left: left, Op: op, Right: right}, nil
}

// expression := term ((PLUS|MINUS) term)*
func (p *Parser) expression() (ast.Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.is(token.PLUS) || p.is(token.MINUS) {
		op := p.cur().Lit
		p.pos++
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// term := atom ((MULT|DIV) atom)*
func (p *Parser) term() (ast.Expr, error) {
	left, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.is(token.MULT) || p.is(token.DIV) {
		op := p.cur().Lit
		p.pos++
		right, err := p.atom()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) atom() (ast.Expr, error) {
	t := p.cur()
	switch t.Kind {
	case token.NUMBER:
		n, err := strconv.Atoi(t.Lit)
		if err != nil {
			return nil, p.errorf("integer literal in range")
		}
		p.pos++
		return &ast.Number{Value: n}, nil
	case token.STRING:
		p.pos++
		return &ast.String{Value: t.Lit}, nil
	case token.INPUT:
		return p.inputExpr()
	case token.PRINT:
		return p.printExpr()
	case token.LPAREN:
		return p.parenLogical()
	case token.LBRACKET:
		return p.listLiteral()
	case token.IDENT:
		return p.identExpr()
	}
	return nil, p.errorf("expression")
}

// identExpr parses the identifier-led atoms: member access with an optional
// call, calls, class instantiation, list indexing and plain variables.
func (p *Parser) identExpr() (ast.Expr, error) {
	name := p.cur().Lit
	p.pos++

	switch {
	case p.accept(token.DOT):
		member, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		access := &ast.ModuleMemberAccess{Target: name, Member: member.Lit}
		if !p.is(token.LPAREN) {
			return access, nil
		}
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Callee: access, Args: args}, nil

	case p.is(token.LPAREN):
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		if p.classes[name] {
			if members, ok := memberNames(args); ok {
				return &ast.ClassInstantiate{Name: name, Members: members}, nil
			}
		}
		return &ast.FunctionCall{Callee: &ast.Variable{Name: name}, Args: args}, nil

	case p.accept(token.LBRACKET):
		index, err := p.logical()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return &ast.ListIndex{Name: name, Index: index}, nil
	}
	return &ast.Variable{Name: name}, nil
}

// memberNames reports whether every argument is a bare identifier and
// returns their names.
func memberNames(args []ast.Expr) ([]string, bool) {
	names := make([]string, 0, len(args))
	for _, a := range args {
		v, ok := a.(*ast.Variable)
		if !ok {
			return nil, false
		}
		names = append(names, v.Name)
	}
	return names, true
}

// args parses '(' [logical (',' logical)*] ')'.
func (p *Parser) args() ([]ast.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	args := []ast.Expr{}
	if p.accept(token.RPAREN) {
		return args, nil
	}
	for {
		a, err := p.logical()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if !p.accept(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) listLiteral() (ast.Expr, error) {
	p.pos++ // '['
	list := &ast.ListLiteral{Elements: []ast.Expr{}}
	if p.accept(token.RBRACKET) {
		return list, nil
	}
	for {
		e, err := p.logical()
		if err != nil {
			return nil, err
		}
		list.Elements = append(list.Elements, e)
		if !p.accept(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parenLogical() (ast.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	e, err := p.logical()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return e, nil
}

// printExpr parses PRINT '(' logical ')'.
func (p *Parser) printExpr() (*ast.Print, error) {
	start := p.cur().Pos
	p.pos++ // PRINT
	v, err := p.parenLogical()
	if err != nil {
		return nil, err
	}
	return &ast.Print{BaseStmt: ast.BaseStmt{Offset: start}, Value: v}, nil
}

// inputExpr parses INPUT ['(' [logical] ')'].
func (p *Parser) inputExpr() (*ast.Input, error) {
	in := &ast.Input{BaseStmt: ast.BaseStmt{Offset: p.cur().Pos}}
	p.pos++ // INPUT
	if !p.accept(token.LPAREN) {
		return in, nil
	}
	if p.accept(token.RPAREN) {
		return in, nil
	}
	prompt, err := p.logical()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	in.Prompt = prompt
	return in, nil
}
