package interp

import (
	"strings"

	"github.com/tsegab/tlang/ast"
	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/value"
)

// binop evaluates both operands left to right, except for && and || which
// short-circuit and yield one of their operands.
func (i *Interpreter) binop(env *Environment, b *ast.BinOp) (any, error) {
	left, err := i.Evaluate(env, b.Left)
	if err != nil {
		return nil, err
	}
	switch b.Op {
	case "&&":
		if !value.Truthy(left) {
			return left, nil
		}
		return i.Evaluate(env, b.Right)
	case "||":
		if value.Truthy(left) {
			return left, nil
		}
		return i.Evaluate(env, b.Right)
	}
	right, err := i.Evaluate(env, b.Right)
	if err != nil {
		return nil, err
	}
	return Apply(b.Op, left, right)
}

// Apply computes left op right for a non short-circuit operator.
func Apply(op string, left, right any) (any, error) {
	switch op {
	case "+":
		return add(left, right)
	case "-":
		return arith(op, left, right, func(a, b int) int { return a - b }, func(a, b float64) float64 { return a - b })
	case "*":
		return mul(left, right)
	case "/":
		return div(left, right)
	case "==":
		return value.Equal(left, right), nil
	case "!=":
		return !value.Equal(left, right), nil
	case "<", ">", "<=", ">=":
		c, err := value.Compare(left, right)
		if err != nil {
			return nil, err
		}
		switch op {
		case "<":
			return c < 0, nil
		case ">":
			return c > 0, nil
		case "<=":
			return c <= 0, nil
		}
		return c >= 0, nil
	}
	return nil, diag.Runtimef(diag.UnknownOperator, "unknown operator %q", op)
}

func operandError(op string, left, right any) error {
	return diag.Runtimef(diag.TypeMismatch, "unsupported operand types for %s: %s and %s",
		op, value.TypeName(left), value.TypeName(right))
}

// arith applies a numeric operator: int with int stays int, anything else
// numeric is widened to float.
func arith(op string, left, right any, ints func(a, b int) int, floats func(a, b float64) float64) (any, error) {
	if a, ok := left.(int); ok {
		if b, ok := right.(int); ok {
			return ints(a, b), nil
		}
	}
	a, okA := value.ToFloat(left)
	b, okB := value.ToFloat(right)
	if !okA || !okB {
		return nil, operandError(op, left, right)
	}
	return floats(a, b), nil
}

func add(left, right any) (any, error) {
	switch l := left.(type) {
	case string:
		if r, ok := right.(string); ok {
			return l + r, nil
		}
		return nil, operandError("+", left, right)
	case *value.List:
		r, ok := right.(*value.List)
		if !ok {
			return nil, operandError("+", left, right)
		}
		items := make([]any, 0, l.Len()+r.Len())
		items = append(items, l.Items...)
		return value.NewList(append(items, r.Items...)...), nil
	}
	return arith("+", left, right, func(a, b int) int { return a + b }, func(a, b float64) float64 { return a + b })
}

func mul(left, right any) (any, error) {
	if n, ok := right.(int); ok {
		if r, ok, err := repeat(left, n); ok {
			return r, err
		}
	}
	if n, ok := left.(int); ok {
		if r, ok, err := repeat(right, n); ok {
			return r, err
		}
	}
	return arith("*", left, right, func(a, b int) int { return a * b }, func(a, b float64) float64 { return a * b })
}

// maxRepeatLen bounds the length of a repeated string in bytes or a
// repeated list in items.
const maxRepeatLen = 1 << 28

// repeat implements string and list repetition. Counts below zero repeat
// zero times. ok reports whether v can be repeated at all.
func repeat(v any, n int) (r any, ok bool, err error) {
	n = max(n, 0)
	switch v := v.(type) {
	case string:
		if err := repeatLen(len(v), n); err != nil {
			return nil, true, err
		}
		return strings.Repeat(v, n), true, nil
	case *value.List:
		if err := repeatLen(v.Len(), n); err != nil {
			return nil, true, err
		}
		if v.Len() == 0 {
			return value.NewList(), true, nil
		}
		items := make([]any, 0, v.Len()*n)
		for range n {
			items = append(items, v.Items...)
		}
		return value.NewList(items...), true, nil
	}
	return nil, false, nil
}

func repeatLen(size, n int) error {
	if n > 0 && size > maxRepeatLen/n {
		return diag.Runtimef(diag.TypeMismatch, "repetition of length %d by %d exceeds %d", size, n, maxRepeatLen)
	}
	return nil
}

func div(left, right any) (any, error) {
	a, okA := value.ToFloat(left)
	b, okB := value.ToFloat(right)
	if !okA || !okB {
		return nil, operandError("/", left, right)
	}
	if b == 0 {
		return nil, diag.Runtimef(diag.DivisionByZero, "division by zero")
	}
	return a / b, nil
}
