package strmod

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/value"
)

// --- str module ---

type Str struct{}

func (*Str) Length(args []any) (any, error) {
	switch v := args[0].(type) {
	case string:
		return utf8.RuneCountInString(v), nil
	case *value.List:
		return v.Len(), nil
	}
	return nil, diag.Runtimef(diag.TypeMismatch, "length: expected string or list, got %s", value.TypeName(args[0]))
}

func (*Str) Replace(args []any) (any, error) {
	return strings.ReplaceAll(args[0].(string), args[1].(string), args[2].(string)), nil
}

func (*Str) Split(args []any) (any, error) {
	parts := strings.Split(args[0].(string), args[1].(string))
	items := make([]any, len(parts))
	for i, p := range parts {
		items[i] = p
	}
	return value.NewList(items...), nil
}

func (*Str) Upper(args []any) (any, error) {
	return cases.Upper(language.Und).String(args[0].(string)), nil
}

func (*Str) Lower(args []any) (any, error) {
	return cases.Lower(language.Und).String(args[0].(string)), nil
}

func (*Str) Trim(args []any) (any, error) {
	return strings.TrimSpace(args[0].(string)), nil
}

func (*Str) Contains(args []any) (any, error) {
	return strings.Contains(args[0].(string), args[1].(string)), nil
}
