// Package value is the tlang runtime value model.
//
// Values are plain Go values held in an any:
//
//	int          integer literals and integer arithmetic
//	float64      division and math builtins
//	string       text
//	bool         comparison results
//	NoneType     the absent value (None)
//	*List        mutable list, shared by reference
//	*Instance    an instantiated class
//
// Callables (*ast.FunctionDef, builtins) and host objects such as open files
// are also values; they format through their String method.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tsegab/tlang/ast"
	"github.com/tsegab/tlang/diag"
)

// NoneType is the type of None.
type NoneType struct{}

func (NoneType) String() string { return "none" }

// None is the value of calls that produce nothing.
var None = NoneType{}

// List is a mutable sequence. Lists are passed by reference: every binding
// of the same *List observes mutations.
type List struct {
	Items []any
}

// NewList returns a list holding items.
func NewList(items ...any) *List {
	if items == nil {
		items = []any{}
	}
	return &List{Items: items}
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.Items) }

// Index resolves a possibly negative index against length n.
func Index(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// Instance is an instantiated class: the class name and the methods that
// were selected at instantiation.
type Instance struct {
	Class   string
	Methods map[string]*ast.FunctionDef
}

// Method returns the named method.
func (in *Instance) Method(name string) (*ast.FunctionDef, bool) {
	fn, ok := in.Methods[name]
	return fn, ok
}

func (in *Instance) String() string { return "<" + in.Class + " instance>" }

// TypeName returns the user-facing name of v's type.
func TypeName(v any) string {
	switch v.(type) {
	case int:
		return "int"
	case float64:
		return "float"
	case string:
		return "string"
	case bool:
		return "bool"
	case NoneType, nil:
		return "none"
	case *List:
		return "list"
	case *Instance:
		return "instance"
	case *ast.FunctionDef:
		return "function"
	}
	if n, ok := v.(interface{ TypeName() string }); ok {
		return n.TypeName()
	}
	return fmt.Sprintf("%T", v)
}

// Format renders v the way out() prints it.
func Format(v any) string {
	var b strings.Builder
	format(&b, v, false, nil)
	return b.String()
}

// format tracks the lists currently being printed in open; a list reached
// again inside itself prints as "[...]".
func format(b *strings.Builder, v any, nested bool, open map[*List]bool) {
	switch v := v.(type) {
	case int:
		b.WriteString(strconv.Itoa(v))
	case float64:
		b.WriteString(FormatFloat(v))
	case string:
		if nested {
			b.WriteByte('\'')
			b.WriteString(v)
			b.WriteByte('\'')
			return
		}
		b.WriteString(v)
	case bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case nil:
		b.WriteString("none")
	case *List:
		if open[v] {
			b.WriteString("[...]")
			return
		}
		if open == nil {
			open = make(map[*List]bool)
		}
		open[v] = true
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, item, true, open)
		}
		b.WriteByte(']')
		delete(open, v)
	case *ast.FunctionDef:
		b.WriteString("<function " + v.Name + ">")
	case fmt.Stringer:
		b.WriteString(v.String())
	default:
		fmt.Fprint(b, v)
	}
}

// FormatFloat renders f with the shortest representation that round-trips.
// Integral values keep a ".0" suffix; very large and very small magnitudes
// use exponent notation.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Truthy reports whether v counts as true in a condition. false, zero
// numbers, the empty string, the empty list and none are false.
func Truthy(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	case *List:
		return len(v.Items) != 0
	case NoneType, nil:
		return false
	}
	return true
}

// ToFloat widens a numeric value.
func ToFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// IsNumber reports whether v is an int or a float64.
func IsNumber(v any) bool {
	_, ok := ToFloat(v)
	return ok
}

// Equal reports structural equality. Ints and floats compare numerically;
// lists compare element-wise; any other pair of different types is unequal.
// A pair of lists met again while it is still being compared counts as
// equal, so cyclic lists terminate.
func Equal(a, b any) bool {
	return equal(a, b, nil)
}

type listPair struct{ a, b *List }

func equal(a, b any, open map[listPair]bool) bool {
	switch a := a.(type) {
	case int:
		switch b := b.(type) {
		case int:
			return a == b
		case float64:
			return float64(a) == b
		}
		return false
	case float64:
		if fb, ok := ToFloat(b); ok {
			return a == fb
		}
		return false
	case string:
		bs, ok := b.(string)
		return ok && a == bs
	case bool:
		bb, ok := b.(bool)
		return ok && a == bb
	case NoneType, nil:
		switch b.(type) {
		case NoneType, nil:
			return true
		}
		return false
	case *List:
		bl, ok := b.(*List)
		if !ok {
			return false
		}
		if a == bl {
			return true
		}
		if len(a.Items) != len(bl.Items) {
			return false
		}
		pair := listPair{a, bl}
		if open[pair] {
			return true
		}
		if open == nil {
			open = make(map[listPair]bool)
		}
		open[pair] = true
		defer delete(open, pair)
		for i := range a.Items {
			if !equal(a.Items[i], bl.Items[i], open) {
				return false
			}
		}
		return true
	}
	return a == b
}

// Compare orders two numbers or two strings. It returns -1, 0 or 1, or a
// TypeMismatch error for any other pair.
func Compare(a, b any) (int, error) {
	if fa, ok := ToFloat(a); ok {
		if fb, ok := ToFloat(b); ok {
			if ia, ok := a.(int); ok {
				if ib, ok := b.(int); ok {
					return cmpOrdered(ia, ib), nil
				}
			}
			return cmpOrdered(fa, fb), nil
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb), nil
		}
	}
	return 0, diag.Runtimef(diag.TypeMismatch, "cannot compare %s with %s", TypeName(a), TypeName(b))
}

func cmpOrdered[T int | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
