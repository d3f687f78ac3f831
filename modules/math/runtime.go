package mathmod

import (
	gomath "math"
	"strconv"

	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/value"
)

// --- math module ---

type Math struct{}

// unary adapts a float function; the registry has already widened the
// argument to float64.
func unary(fn func(float64) float64) func([]any) (any, error) {
	return func(args []any) (any, error) {
		return fn(args[0].(float64)), nil
	}
}

func number(fn string, v any) error {
	if value.IsNumber(v) {
		return nil
	}
	return diag.Runtimef(diag.TypeMismatch, "%s: expected a number, got %s", fn, value.TypeName(v))
}

func (*Math) Abs(args []any) (any, error) {
	switch n := args[0].(type) {
	case int:
		if n < 0 {
			return -n, nil
		}
		return n, nil
	case float64:
		return gomath.Abs(n), nil
	}
	return nil, number("abs", args[0])
}

func (*Math) Round(args []any) (any, error) {
	digits := args[1].(int)
	switch n := args[0].(type) {
	case int:
		if digits >= 0 {
			return n, nil
		}
		scale := gomath.Pow(10, float64(-digits))
		return int(gomath.RoundToEven(float64(n)/scale) * scale), nil
	case float64:
		if gomath.IsInf(n, 0) || gomath.IsNaN(n) {
			return n, nil
		}
		if digits < 0 {
			scale := gomath.Pow(10, float64(-digits))
			return gomath.RoundToEven(n/scale) * scale, nil
		}
		// FormatFloat rounds the exact binary value half to even.
		r, err := strconv.ParseFloat(strconv.FormatFloat(n, 'f', digits, 64), 64)
		if err != nil {
			return nil, diag.Runtimef(diag.TypeMismatch, "round: %v", err)
		}
		return r, nil
	}
	return nil, number("round", args[0])
}

func (*Math) Pow(args []any) (any, error) {
	if err := number("pow", args[0]); err != nil {
		return nil, err
	}
	if err := number("pow", args[1]); err != nil {
		return nil, err
	}
	base, bok := args[0].(int)
	exp, eok := args[1].(int)
	if bok && eok && exp >= 0 {
		result := 1
		for ; exp > 0; exp-- {
			result *= base
		}
		return result, nil
	}
	b, _ := value.ToFloat(args[0])
	e, _ := value.ToFloat(args[1])
	return gomath.Pow(b, e), nil
}

func (*Math) Max(args []any) (any, error) { return extreme("max", args, 1) }

func (*Math) Min(args []any) (any, error) { return extreme("min", args, -1) }

// extreme returns the item whose comparison against the current best
// equals want. A single list argument is searched instead of the
// argument list.
func extreme(fn string, args []any, want int) (any, error) {
	items := args
	if len(args) == 1 {
		if l, ok := args[0].(*value.List); ok {
			items = l.Items
		}
	}
	if len(items) == 0 {
		return nil, diag.Runtimef(diag.IndexOutOfRange, "%s of an empty list", fn)
	}
	best := items[0]
	for _, it := range items[1:] {
		c, err := value.Compare(it, best)
		if err != nil {
			return nil, err
		}
		if c == want {
			best = it
		}
	}
	return best, nil
}

func (*Math) Pi([]any) (any, error) { return gomath.Pi, nil }
