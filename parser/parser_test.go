package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsegab/tlang/ast"
	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/lexer"
	"github.com/tsegab/tlang/token"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseSource("test.tl", src)
	require.NoError(t, err)
	return prog
}

func parseErr(t *testing.T, src string) *diag.ParseError {
	t.Helper()
	_, err := ParseSource("test.tl", src)
	require.Error(t, err)
	var pe *diag.ParseError
	require.ErrorAs(t, err, &pe)
	return pe
}

func TestParseAssignment(t *testing.T) {
	prog := parse(t, "x = 42;")
	require.Len(t, prog.Statements, 1)
	assign, ok := prog.Statements[0].(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)
	assert.Equal(t, &ast.Number{Value: 42}, assign.Value)
	assert.Equal(t, 0, assign.Offset)
	assert.Equal(t, "test.tl", prog.SourceFile)
}

func TestParsePrecedence(t *testing.T) {
	prog := parse(t, "out(2+3*4);")
	pr := prog.Statements[0].(*ast.Print)
	assert.Equal(t, &ast.BinOp{
		Left: &ast.Number{Value: 2},
		Op:   "+",
		Right: &ast.BinOp{
			Left:  &ast.Number{Value: 3},
			Op:    "*",
			Right: &ast.Number{Value: 4},
		},
	}, pr.Value)
}

func TestParseLeftAssociative(t *testing.T) {
	prog := parse(t, "x = 10 - 3 - 2;")
	assign := prog.Statements[0].(*ast.Assign)
	outer := assign.Value.(*ast.BinOp)
	assert.Equal(t, "-", outer.Op)
	assert.Equal(t, &ast.Number{Value: 2}, outer.Right)
	inner := outer.Left.(*ast.BinOp)
	assert.Equal(t, &ast.Number{Value: 10}, inner.Left)
}

func TestParseLogicalBindsLoosest(t *testing.T) {
	prog := parse(t, "out(1<2 && 2<3);")
	and := prog.Statements[0].(*ast.Print).Value.(*ast.BinOp)
	assert.Equal(t, "&&", and.Op)
	assert.Equal(t, "<", and.Left.(*ast.BinOp).Op)
	assert.Equal(t, "<", and.Right.(*ast.BinOp).Op)
}

func TestParseComparisonDoesNotChain(t *testing.T) {
	pe := parseErr(t, "out(1 < 2 < 3);")
	assert.Equal(t, "a single comparison", pe.Expected)
	assert.Equal(t, token.LT, pe.Found.Kind)
}

func TestParseListIndexAssign(t *testing.T) {
	prog := parse(t, "a[1+1] = 99;")
	s, ok := prog.Statements[0].(*ast.ListIndexAssign)
	require.True(t, ok)
	assert.Equal(t, "a", s.Name)
	assert.Equal(t, &ast.Number{Value: 99}, s.Value)
	assert.IsType(t, &ast.BinOp{}, s.Index)
}

func TestParseBacktracksToExpression(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Expr
	}{
		{"call", "f(1);", &ast.FunctionCall{Callee: &ast.Variable{Name: "f"}, Args: []ast.Expr{&ast.Number{Value: 1}}}},
		{"index", "a[0];", &ast.ListIndex{Name: "a", Index: &ast.Number{Value: 0}}},
		{"comparison", "a == 1;", &ast.BinOp{Left: &ast.Variable{Name: "a"}, Op: "==", Right: &ast.Number{Value: 1}}},
		{"member call", "m.f();", &ast.FunctionCall{Callee: &ast.ModuleMemberAccess{Target: "m", Member: "f"}, Args: []ast.Expr{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parse(t, tt.src)
			require.Len(t, prog.Statements, 1)
			stmt, ok := prog.Statements[0].(*ast.ExprStmt)
			require.True(t, ok, "got %T", prog.Statements[0])
			assert.Equal(t, tt.want, stmt.Expression)
		})
	}
}

func TestParseParenExpressionStatement(t *testing.T) {
	prog := parse(t, "(f(1));")
	_, ok := prog.Statements[0].(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParseConditional(t *testing.T) {
	prog := parse(t, "if(1>2){out(1);}elif(2>2){out(2);}else{out(3);}")
	c, ok := prog.Statements[0].(*ast.Conditional)
	require.True(t, ok)
	assert.Len(t, c.Body, 1)
	require.NotNil(t, c.ElifCond)
	assert.Len(t, c.ElifBody, 1)
	assert.Len(t, c.ElseBody, 1)
}

func TestParseConditionalWithoutElse(t *testing.T) {
	prog := parse(t, "if (x) { out(1); }")
	c := prog.Statements[0].(*ast.Conditional)
	assert.Nil(t, c.ElifCond)
	assert.Nil(t, c.ElseBody)
}

func TestParseSecondElifIsNotAllowed(t *testing.T) {
	pe := parseErr(t, "if (a) {} elif (b) {} elif (c) {}")
	assert.Equal(t, token.ELSEIF, pe.Found.Kind)
}

func TestParseLoops(t *testing.T) {
	prog := parse(t, "for(i=0 to 3){out(i);} for (j from 1 to n) {} while (x < 3) { x = x + 1; }")
	require.Len(t, prog.Statements, 3)

	f := prog.Statements[0].(*ast.ForLoop)
	assert.Equal(t, "i", f.Var)
	assert.Equal(t, &ast.Number{Value: 0}, f.Start)
	assert.Equal(t, &ast.Number{Value: 3}, f.End)
	assert.Len(t, f.Body, 1)

	g := prog.Statements[1].(*ast.ForLoop)
	assert.Equal(t, &ast.Variable{Name: "n"}, g.End)

	w := prog.Statements[2].(*ast.WhileLoop)
	assert.Len(t, w.Body, 1)
}

func TestParseEthiopicProgram(t *testing.T) {
	src := "ለ (ሀ ከ 0 እስከ 3) { አሳይ(ሀ)። }\nከሆነ (ሀ > 1 እና ሀ < 5) { አሳይ(\"ነው\")። } ሌላ { አሳይ(\"አይደለም\")። }"
	prog := parse(t, src)
	require.Len(t, prog.Statements, 2)
	assert.IsType(t, &ast.ForLoop{}, prog.Statements[0])
	c := prog.Statements[1].(*ast.Conditional)
	assert.Equal(t, "&&", c.Cond.(*ast.BinOp).Op)
}

func TestParseFunctionDef(t *testing.T) {
	prog := parse(t, "fun add(a, b) { out(a + b); }")
	fn, ok := prog.Statements[0].(*ast.FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	assert.Equal(t, "test.tl", fn.SourceFile)
	assert.Len(t, fn.Body, 1)
}

func TestParseNoTrailingComma(t *testing.T) {
	pe := parseErr(t, "f(1, 2,);")
	assert.Equal(t, "expression", pe.Expected)
	assert.Equal(t, token.RPAREN, pe.Found.Kind)

	pe = parseErr(t, "fun f(a,) {}")
	assert.Equal(t, "IDENTIFIER", pe.Expected)
}

func TestParseClassAndInstantiate(t *testing.T) {
	prog := parse(t, "class Point { fun show() { out(1); } fun hide() {} } p = Point(show); q = Point(); r = Other(x);")
	require.Len(t, prog.Statements, 4)

	cls := prog.Statements[0].(*ast.ClassDef)
	assert.Equal(t, "Point", cls.Name)
	assert.Len(t, cls.Methods(), 2)

	p := prog.Statements[1].(*ast.Assign)
	assert.Equal(t, &ast.ClassInstantiate{Name: "Point", Members: []string{"show"}}, p.Value)

	q := prog.Statements[2].(*ast.Assign)
	assert.Equal(t, &ast.ClassInstantiate{Name: "Point", Members: []string{}}, q.Value)

	r := prog.Statements[3].(*ast.Assign)
	assert.IsType(t, &ast.FunctionCall{}, r.Value)
}

func TestParseImport(t *testing.T) {
	prog := parse(t, `import "lib/util.tl" as u; import helpers; አስገባ "ሒሳብ"።`)
	require.Len(t, prog.Statements, 3)

	a := prog.Statements[0].(*ast.ImportStatement)
	assert.Equal(t, "lib/util.tl", a.Path)
	assert.Equal(t, "u", a.Namespace())

	b := prog.Statements[1].(*ast.ImportStatement)
	assert.Equal(t, "helpers", b.Path)
	assert.Equal(t, "helpers", b.Namespace())

	c := prog.Statements[2].(*ast.ImportStatement)
	assert.Equal(t, "ሒሳብ", c.Namespace())
}

func TestParseInputForms(t *testing.T) {
	prog := parse(t, `input; input(); input("name? "); x = input("age? " + "now");`)
	require.Len(t, prog.Statements, 4)
	assert.Nil(t, prog.Statements[0].(*ast.Input).Prompt)
	assert.Nil(t, prog.Statements[1].(*ast.Input).Prompt)
	assert.Equal(t, &ast.String{Value: "name? "}, prog.Statements[2].(*ast.Input).Prompt)
	in := prog.Statements[3].(*ast.Assign).Value.(*ast.Input)
	assert.IsType(t, &ast.BinOp{}, in.Prompt)
}

func TestParsePrintAsExpression(t *testing.T) {
	prog := parse(t, "x = out(1);")
	assert.IsType(t, &ast.Print{}, prog.Statements[0].(*ast.Assign).Value)
}

func TestParseListLiteral(t *testing.T) {
	prog := parse(t, "a = [1, 'b', [2]]; e = [];")
	lit := prog.Statements[0].(*ast.Assign).Value.(*ast.ListLiteral)
	assert.Len(t, lit.Elements, 3)
	assert.IsType(t, &ast.ListLiteral{}, lit.Elements[2])
	empty := prog.Statements[1].(*ast.Assign).Value.(*ast.ListLiteral)
	assert.Empty(t, empty.Elements)
}

func TestParseBlockClosedByEndOfInput(t *testing.T) {
	prog := parse(t, "while (x) { x = 0;")
	w := prog.Statements[0].(*ast.WhileLoop)
	assert.Len(t, w.Body, 1)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
		found    token.Kind
		line     int
		col      int
	}{
		{"missing semicolon", "x = 1\ny = 2;", "SEMICOLON", token.IDENT, 2, 1},
		{"eof in expression", "x = ", "expression", token.EOF, 1, 5},
		{"eof in call", "f(1", "RPAREN", token.EOF, 1, 4},
		{"stray brace", "}", "statement", token.RBRACE, 1, 1},
		{"number statement", "1;", "statement", token.NUMBER, 1, 1},
		{"for without to", "for (i = 0 3) {}", "TO", token.NUMBER, 1, 12},
		{"import number", "import 3;", "STRING or IDENTIFIER", token.NUMBER, 1, 8},
		{"huge literal", "x = 99999999999999999999;", "integer literal in range", token.NUMBER, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := parseErr(t, tt.src)
			assert.Equal(t, tt.expected, pe.Expected)
			assert.Equal(t, tt.found, pe.Found.Kind)
			assert.Equal(t, tt.line, pe.Line)
			assert.Equal(t, tt.col, pe.Col)
		})
	}
}

func TestParseUnexpectedEOF(t *testing.T) {
	pe := parseErr(t, "out(")
	assert.True(t, pe.UnexpectedEOF())
	assert.Equal(t, "unexpected end of input, expected expression", pe.Message())
}

func TestParseLexErrorPassesThrough(t *testing.T) {
	_, err := ParseSource("test.tl", "x = $;")
	var le *diag.LexError
	assert.ErrorAs(t, err, &le)
}

func TestParseTokensWithoutSource(t *testing.T) {
	toks, err := lexer.Tokenize("x = ;")
	require.NoError(t, err)
	_, err = Parse("anon", toks)
	var pe *diag.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Index)
	assert.Equal(t, 4, pe.Offset)
	assert.Equal(t, 0, pe.Line)
}

func TestParseIsDeterministic(t *testing.T) {
	src := "fun f(a) { a = a + 1; out(a); } x = 10; f(x); out(x);"
	assert.Equal(t, ast.DumpString(parse(t, src)), ast.DumpString(parse(t, src)))
}
