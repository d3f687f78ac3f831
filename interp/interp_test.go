package interp

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/value"
	_ "github.com/tsegab/tlang/modules/conv"
	_ "github.com/tsegab/tlang/modules/math"
	_ "github.com/tsegab/tlang/modules/str"
)

// run executes src in a fresh interpreter and environment and returns what
// it printed.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	return runWithInput(t, src, "")
}

func runWithInput(t *testing.T, src, stdin string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	in := New(Options{Stdout: &out, Stdin: strings.NewReader(stdin)})
	_, err := in.RunSource(NewEnvironment(), "t.tl", src)
	return out.String(), err
}

func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	require.NoError(t, err)
	return out
}

func requireKind(t *testing.T, err error, kind diag.Kind) *diag.RuntimeError {
	t.Helper()
	require.Error(t, err)
	var re *diag.RuntimeError
	require.True(t, errors.As(err, &re), "expected RuntimeError, got %T: %v", err, err)
	require.Equal(t, kind, re.Kind, "error: %v", err)
	return re
}

func TestPrecedence(t *testing.T) {
	assert.Equal(t, "14\n", mustRun(t, "out(2+3*4);"))
	assert.Equal(t, "20\n", mustRun(t, "out((2+3)*4);"))
	assert.Equal(t, "5\n", mustRun(t, "out(10-3-2);"))
	assert.Equal(t, "true\n", mustRun(t, "out(1 + 1 == 2);"))
}

func TestLogicalReturnsOperand(t *testing.T) {
	assert.Equal(t, "true\n", mustRun(t, "out(1<2 && 2<3);"))
	assert.Equal(t, "0\n", mustRun(t, "out(0 && 1);"))
	assert.Equal(t, "3\n", mustRun(t, "out(2 && 3);"))
	assert.Equal(t, "x\n", mustRun(t, `out("" || "x");`))
	assert.Equal(t, "1\n", mustRun(t, "out(1 || 2);"))
}

func TestLogicalShortCircuits(t *testing.T) {
	assert.Equal(t, "1\n", mustRun(t, "out(1 || missing);"))
	assert.Equal(t, "0\n", mustRun(t, "out(0 && missing);"))

	_, err := run(t, "out(1 && missing);")
	requireKind(t, err, diag.UndefinedName)
}

func TestAssignment(t *testing.T) {
	assert.Equal(t, "5\n", mustRun(t, "x=5; out(x);"))
	assert.Equal(t, "6\n", mustRun(t, "x=5; x=x+1; out(x);"))
}

func TestCallScoping(t *testing.T) {
	out := mustRun(t, "fun f(a){ a=a+1; out(a); } x=10; f(x); out(x);")
	assert.Equal(t, "11\n10\n", out)
}

func TestCallScopeSharesLists(t *testing.T) {
	out := mustRun(t, "fun f(l){ l[0]=9; l=[7]; } a=[1, 2]; f(a); out(a);")
	assert.Equal(t, "[9, 2]\n", out)
}

func TestCallBindingsDoNotLeak(t *testing.T) {
	_, err := run(t, "fun f(){ y=1; } f(); out(y);")
	requireKind(t, err, diag.UndefinedName)

	assert.Equal(t, "5\n", mustRun(t, "g=5; fun f(){ out(g); } f();"))
	assert.Equal(t, "1\n", mustRun(t, "x=1; fun f(){ x=2; } f(); out(x);"))
}

func TestCallSeesCallerScope(t *testing.T) {
	out := mustRun(t, "fun inner(){ out(a); } fun outer(a){ inner(); } outer(3);")
	assert.Equal(t, "3\n", out)
}

func TestCallRestoresBindingsOnError(t *testing.T) {
	env := NewEnvironment()
	in := New(Options{Stdout: &bytes.Buffer{}})
	_, err := in.RunSource(env, "t.tl", "fun f(a){ a=a+1; out(zz); } x=1; f(x);")
	requireKind(t, err, diag.UndefinedName)

	_, ok := env.Lookup("a")
	assert.False(t, ok, "parameter leaked into the caller")
	x, ok := env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 1, x)
}

func TestUserFunctionYieldsNone(t *testing.T) {
	assert.Equal(t, "none\n", mustRun(t, "fun f(){} out(f());"))
}

func TestRecursion(t *testing.T) {
	out := mustRun(t, "fun count(n){ if(n>0){ out(n); count(n-1); } } count(3);")
	assert.Equal(t, "3\n2\n1\n", out)
}

func TestRecursionLimit(t *testing.T) {
	in := New(Options{Stdout: &bytes.Buffer{}, MaxDepth: 50})
	_, err := in.RunSource(NewEnvironment(), "t.tl", "fun f(){ f(); } f();")
	requireKind(t, err, diag.RecursionLimit)
	assert.Equal(t, 0, in.depth)
}

func TestConditional(t *testing.T) {
	assert.Equal(t, "3\n", mustRun(t, "if(1>2){out(1);}elif(2>2){out(2);}else{out(3);}"))
	assert.Equal(t, "2\n", mustRun(t, "if(0){out(1);}elif(1){out(2);}else{out(3);}"))
	assert.Equal(t, "", mustRun(t, "if(0){out(1);}"))
	assert.Equal(t, "1\n", mustRun(t, "if(1){out(1);}elif(1){out(2);}"))
}

func TestForLoop(t *testing.T) {
	assert.Equal(t, "0\n1\n2\n", mustRun(t, "for(i=0 to 3){out(i);}"))
	assert.Equal(t, "2\n", mustRun(t, "for(i=0 to 3){} out(i);"))
	assert.Equal(t, "1\n2\n", mustRun(t, "for(i from 1 to 3){out(i);}"))
	assert.Equal(t, "", mustRun(t, "for(i=3 to 3){out(i);}"))

	out := mustRun(t, "n=2; for(i=0 to n){ n=10; out(i); }")
	assert.Equal(t, "0\n1\n", out, "bounds are evaluated once")

	_, err := run(t, "for(i=0 to 5/2){out(i);}")
	requireKind(t, err, diag.TypeMismatch)
}

func TestWhileLoop(t *testing.T) {
	assert.Equal(t, "3\n", mustRun(t, "i=0; while(i<3){ i=i+1; } out(i);"))
	assert.Equal(t, "", mustRun(t, "while(0){ out(1); }"))
}

func TestLists(t *testing.T) {
	assert.Equal(t, "99\n", mustRun(t, "a=[1,2,3]; a[1]=99; out(a[1]);"))
	assert.Equal(t, "3\n", mustRun(t, "a=[1,2,3]; out(a[0-1]);"))
	assert.Equal(t, "[1, 'b', [2]]\n", mustRun(t, `a=[1,"b",[2]]; out(a);`))
	assert.Equal(t, "[9]\n", mustRun(t, "a=[1]; b=a; b[0]=9; out(a);"))
	assert.Equal(t, "ላ\n", mustRun(t, `s="ሰላም"; out(s[1]);`))

	_, err := run(t, "a=[1]; out(a[1]);")
	requireKind(t, err, diag.IndexOutOfRange)
	_, err = run(t, "a=[1]; a[5]=1;")
	requireKind(t, err, diag.IndexOutOfRange)
	_, err = run(t, `a=[1]; out(a["0"]);`)
	requireKind(t, err, diag.TypeMismatch)
	_, err = run(t, "a=1; out(a[0]);")
	requireKind(t, err, diag.TypeMismatch)
	_, err = run(t, "a=1; a[0]=2;")
	requireKind(t, err, diag.TypeMismatch)
	_, err = run(t, "b[0]=2;")
	requireKind(t, err, diag.UndefinedName)
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"out(7/2);", "3.5"},
		{"out(4/2);", "2.0"},
		{"out(4/2 == 2);", "true"},
		{"out(1/3*3);", "1.0"},
		{`out("a"+"b");`, "ab"},
		{"out([1]+[2]);", "[1, 2]"},
		{`out("ab"*2);`, "abab"},
		{`out(3*"x");`, "xxx"},
		{"out([0]*3);", "[0, 0, 0]"},
		{`out(1 == "1");`, "false"},
		{`out("a" < "b");`, "true"},
		{"out([1, 2] == [1, 2]);", "true"},
		{"out(2 != 3);", "true"},
		{"out(3 >= 3);", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want+"\n", mustRun(t, tt.src))
		})
	}
}

func TestArithmeticErrors(t *testing.T) {
	_, err := run(t, "out(1/0);")
	requireKind(t, err, diag.DivisionByZero)
	_, err = run(t, `out(1 < "a");`)
	requireKind(t, err, diag.TypeMismatch)
	_, err = run(t, `out(1 + "a");`)
	requireKind(t, err, diag.TypeMismatch)
	_, err = run(t, `out("a" - "b");`)
	requireKind(t, err, diag.TypeMismatch)
}

func TestApplyUnknownOperator(t *testing.T) {
	_, err := Apply("%", 1, 2)
	requireKind(t, err, diag.UnknownOperator)
}

func TestBuiltins(t *testing.T) {
	assert.Equal(t, "3\n", mustRun(t, "out(abs(0-3));"))
	assert.Equal(t, "3\n", mustRun(t, "f = abs; out(f(0-3));"))
	assert.Equal(t, "<builtin abs>\n", mustRun(t, "out(abs);"))
	assert.Equal(t, "3\n", mustRun(t, `out(ርዝመት("ሰላም"));`))
	assert.Equal(t, "42\n", mustRun(t, `out(ቁጥር("42") + 0);`))

	_, err := run(t, "pi(1);")
	requireKind(t, err, diag.ArityMismatch)
}

func TestCallErrors(t *testing.T) {
	_, err := run(t, "nope();")
	requireKind(t, err, diag.UndefinedName)
	_, err = run(t, "x=1; x();")
	requireKind(t, err, diag.NotCallable)
	_, err = run(t, "fun f(a){} f();")
	requireKind(t, err, diag.ArityMismatch)
	_, err = run(t, "fun f(){} f(1, 2);")
	requireKind(t, err, diag.ArityMismatch)
	_, err = run(t, "x=1; out(x.y);")
	requireKind(t, err, diag.UndefinedMember)
	_, err = run(t, "out(nowhere.y);")
	requireKind(t, err, diag.UndefinedMember)
}

func TestClasses(t *testing.T) {
	src := `
class P {
  fun hi() { out("hi"); }
  fun bye() { out("bye"); }
}
p = P(hi);
p.hi();
q = P();
q.bye();
P.hi();
out(p);
`
	assert.Equal(t, "hi\nbye\nhi\n<P instance>\n", mustRun(t, src))

	_, err := run(t, "class P { fun hi() {} } p = P(hi); p.bye();")
	requireKind(t, err, diag.UndefinedMember)
	_, err = run(t, "class P { fun hi() {} } p = P(nope);")
	requireKind(t, err, diag.UndefinedMember)
	_, err = run(t, "class P { fun hi() {} } P.nope();")
	requireKind(t, err, diag.UndefinedMember)
	_, err = run(t, "class P { fun hi() {} } p = P(1);")
	requireKind(t, err, diag.ArityMismatch)
}

func TestMethodsReceiveArguments(t *testing.T) {
	src := "class M { fun twice(x) { out(x*2); } } m = M(); m.twice(4); M.twice(5);"
	assert.Equal(t, "8\n10\n", mustRun(t, src))
}

func TestPrintExpression(t *testing.T) {
	assert.Equal(t, "1\nnone\n", mustRun(t, "x = out(1); out(x);"))
}

func TestInput(t *testing.T) {
	out, err := runWithInput(t, `name = input("who? "); out("hi " + name);`, "Abebe\n")
	require.NoError(t, err)
	assert.Equal(t, "who? hi Abebe\n", out)

	out, err = runWithInput(t, "input; x = input(); out(x);", "skip\r\nkeep\r\n")
	require.NoError(t, err)
	assert.Equal(t, "keep\n", out)

	out, err = runWithInput(t, "out(input);", "last")
	require.NoError(t, err)
	assert.Equal(t, "last\n", out)

	_, err = runWithInput(t, "x = input();", "")
	requireKind(t, err, diag.EndOfInput)
}

func TestEthiopicProgram(t *testing.T) {
	src := `
ስም = "ዓለም"።
አሳይ("ሰላም " + ስም)።
ከሆነ (1 > 2) { አሳይ(1)። } ሌላ { አሳይ(2)። }
አሳይ(1 < 2 እና 2 < 3)።
ለ (ቁ ከ 0 እስከ 2) { አሳይ(ቁ)። }
ተግባር ድምር(ሀ፣ ለ1) { አሳይ(ሀ + ለ1)። }
ድምር(2፣ 3)።
`
	assert.Equal(t, "ሰላም ዓለም\n2\ntrue\n0\n1\n5\n", mustRun(t, src))
}

func TestRuntimeErrorPosition(t *testing.T) {
	_, err := run(t, "x = 1;\nout(y);")
	re := requireKind(t, err, diag.UndefinedName)
	assert.Equal(t, "t.tl", re.File)
	assert.Equal(t, 2, re.Line)
	assert.Equal(t, 1, re.Col)

	_, err = run(t, "fun f() {\n  out(q);\n}\nf();")
	re = requireKind(t, err, diag.UndefinedName)
	assert.Equal(t, 2, re.Line, "innermost statement wins")
	assert.Equal(t, 3, re.Col)

	_, err = run(t, "fun f(a) {}\n\nf();")
	re = requireKind(t, err, diag.ArityMismatch)
	assert.Equal(t, 3, re.Line)
}

func TestLexAndParseErrorsPassThrough(t *testing.T) {
	_, err := run(t, "x = 1 $ 2;")
	var lexErr *diag.LexError
	assert.ErrorAs(t, err, &lexErr)

	_, err = run(t, "x = ;")
	var parseErr *diag.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestIdempotentRuns(t *testing.T) {
	src := "a=[1]; fun f(l){ l[0]=l[0]+1; } f(a); out(a); for(i=0 to 2){ out(i); }"
	first := mustRun(t, src)
	second := mustRun(t, src)
	assert.Equal(t, first, second)

	var out bytes.Buffer
	in := New(Options{Stdout: &out})
	for range 2 {
		out.Reset()
		_, err := in.RunSource(NewEnvironment(), "t.tl", src)
		require.NoError(t, err)
		assert.Equal(t, first, out.String())
	}
}

func TestParallelInterpreters(t *testing.T) {
	src := "s=0; for(i=0 to 100){ s=s+i; } out(s);"
	var wg sync.WaitGroup
	results := make([]string, 8)
	for n := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out bytes.Buffer
			in := New(Options{Stdout: &out})
			if _, err := in.RunSource(NewEnvironment(), "t.tl", src); err == nil {
				results[n] = out.String()
			}
		}()
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, "4950\n", r)
	}
}

func TestSessionEnvironment(t *testing.T) {
	var out bytes.Buffer
	in := New(Options{Stdout: &out})
	env := NewEnvironment()
	for _, line := range []string{"x = 2;", "fun sq(n) { out(n*n); }", "sq(x);"} {
		_, err := in.RunSource(env, "<stdin>", line)
		require.NoError(t, err)
	}
	assert.Equal(t, "4\n", out.String())
	_, ok := env.Function("sq")
	assert.True(t, ok)
}

func TestRepetitionLimit(t *testing.T) {
	for _, tt := range []struct{ left, right any }{
		{"ab", math.MaxInt},
		{math.MaxInt, "ab"},
		{value.NewList(1, 2), math.MaxInt},
		{"x", maxRepeatLen + 1},
	} {
		_, err := Apply("*", tt.left, tt.right)
		requireKind(t, err, diag.TypeMismatch)
	}

	out, err := Apply("*", "ab", 2)
	require.NoError(t, err)
	assert.Equal(t, "abab", out)
	out, err = Apply("*", "", math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, "", out)
	out, err = Apply("*", value.NewList(), math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, 0, out.(*value.List).Len())
}
