package strmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/modules"
	"github.com/tsegab/tlang/value"
)

func call(t *testing.T, name string, args ...any) (any, error) {
	t.Helper()
	f, ok := modules.Lookup(name)
	require.True(t, ok, "builtin %s not registered", name)
	return f.Call(args)
}

func mustCall(t *testing.T, name string, args ...any) any {
	t.Helper()
	out, err := call(t, name, args...)
	require.NoError(t, err)
	return out
}

func TestLength(t *testing.T) {
	assert.Equal(t, 3, mustCall(t, "ርዝመት", "ሰላም"))
	assert.Equal(t, 5, mustCall(t, "length", "hello"))
	assert.Equal(t, 0, mustCall(t, "length", ""))
	assert.Equal(t, 2, mustCall(t, "length", value.NewList(1, 2)))

	_, err := call(t, "length", 12)
	assert.True(t, diag.IsKind(err, diag.TypeMismatch))
}

func TestReplace(t *testing.T) {
	assert.Equal(t, "b-b-c", mustCall(t, "ተካ", "a-a-c", "a", "b"))
	assert.Equal(t, "abc", mustCall(t, "replace", "abc", "x", "y"))

	_, err := call(t, "replace", "abc", 1, "y")
	assert.True(t, diag.IsKind(err, diag.TypeMismatch))
}

func TestSplit(t *testing.T) {
	out := mustCall(t, "ክፈል", "a,b,,c", ",")
	assert.Equal(t, value.NewList("a", "b", "", "c"), out)

	out = mustCall(t, "split", "ሀለ", "")
	assert.Equal(t, value.NewList("ሀ", "ለ"), out)

	out = mustCall(t, "split", "", ",")
	assert.Equal(t, value.NewList(""), out)
}

func TestCaseAndTrim(t *testing.T) {
	assert.Equal(t, "HELLO ሰላም", mustCall(t, "upper", "hello ሰላም"))
	assert.Equal(t, "abc", mustCall(t, "lower", "ABC"))
	assert.Equal(t, "x y", mustCall(t, "trim", "  x y\n"))
	assert.Equal(t, true, mustCall(t, "contains", "ሰላም", "ላ"))
	assert.Equal(t, false, mustCall(t, "contains", "abc", "d"))
}
