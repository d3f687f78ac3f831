package convmod

import (
	"math"
	"strconv"
	"strings"

	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/value"
)

// --- conv module ---

type Conv struct{}

func (*Conv) Int(args []any) (any, error) {
	switch v := args[0].(type) {
	case int:
		return v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, diag.Runtimef(diag.TypeMismatch, "int: cannot convert %s", value.FormatFloat(v))
		}
		return int(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(f), nil
		}
		return nil, diag.Runtimef(diag.TypeMismatch, "int: invalid number %q", v)
	}
	return nil, diag.Runtimef(diag.TypeMismatch, "int: cannot convert %s", value.TypeName(args[0]))
}

func (*Conv) Float(args []any) (any, error) {
	switch v := args[0].(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	case bool:
		if v {
			return 1.0, nil
		}
		return 0.0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, diag.Runtimef(diag.TypeMismatch, "float: invalid number %q", v)
		}
		return f, nil
	}
	return nil, diag.Runtimef(diag.TypeMismatch, "float: cannot convert %s", value.TypeName(args[0]))
}

func (*Conv) Str(args []any) (any, error) {
	return value.Format(args[0]), nil
}
