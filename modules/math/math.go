package mathmod

import (
	gomath "math"

	"github.com/tsegab/tlang/modules"
)

func init() {
	m := &Math{}
	modules.Register(&modules.Module{
		Name: "math",
		Doc:  "Numeric functions.",
		Funcs: []modules.FuncDef{
			{Name: "abs", Args: []modules.ArgType{modules.Any}, Impl: m.Abs, Doc: "Return the absolute value of n, keeping its type."},
			{Name: "round", Args: []modules.ArgType{modules.Any, modules.Int}, Impl: m.Round, Doc: "Round n to the given number of decimal digits, half to even."},
			{Name: "sqrt", Args: []modules.ArgType{modules.Float}, Impl: unary(gomath.Sqrt), Doc: "Return the square root of n."},
			{Name: "pow", Args: []modules.ArgType{modules.Any, modules.Any}, Impl: m.Pow, Doc: "Return base raised to exp. Integer operands with a non-negative exponent give an int."},
			{Name: "max", Args: []modules.ArgType{modules.Any}, Variadic: true, Impl: m.Max, Doc: "Return the largest argument, or the largest item of a single list argument."},
			{Name: "min", Args: []modules.ArgType{modules.Any}, Variadic: true, Impl: m.Min, Doc: "Return the smallest argument, or the smallest item of a single list argument."},
			{Name: "sin", Args: []modules.ArgType{modules.Float}, Impl: unary(gomath.Sin), Doc: "Return the sine of n (radians)."},
			{Name: "cos", Args: []modules.ArgType{modules.Float}, Impl: unary(gomath.Cos), Doc: "Return the cosine of n (radians)."},
			{Name: "tan", Args: []modules.ArgType{modules.Float}, Impl: unary(gomath.Tan), Doc: "Return the tangent of n (radians)."},
			{Name: "asin", Args: []modules.ArgType{modules.Float}, Impl: unary(gomath.Asin), Doc: "Return the arc sine of n in radians."},
			{Name: "acos", Args: []modules.ArgType{modules.Float}, Impl: unary(gomath.Acos), Doc: "Return the arc cosine of n in radians."},
			{Name: "atan", Args: []modules.ArgType{modules.Float}, Impl: unary(gomath.Atan), Doc: "Return the arc tangent of n in radians."},
			{Name: "pi", Impl: m.Pi, Doc: "Return the value of Pi."},
		},
	})
}
