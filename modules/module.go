// Package modules is the registry of native builtins.
//
// Each catalog package (math, rand, str, conv, file) registers a Module from
// its init function; the interpreter resolves names through Lookup when a
// name is not bound by the program. The registry is written only during
// package initialization and is read-only afterwards.
package modules

import (
	"fmt"
	"sort"

	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/value"
)

// ArgType represents the expected type of a function argument.
type ArgType int

const (
	String ArgType = iota
	Int
	Float
	Bool
	Any
)

func (t ArgType) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "number"
	case Bool:
		return "bool"
	}
	return "any"
}

// Impl is the native implementation of a builtin. It receives arguments
// already converted according to FuncDef.Args: string, int, float64, bool,
// or the raw value for Any and variadic extras.
type Impl func(args []any) (any, error)

// FuncDef describes a builtin function.
type FuncDef struct {
	// Name is the canonical name the function is registered under.
	Name string
	// Aliases are alternate names resolving to the same function, e.g. the
	// Ethiopic and ASCII spellings.
	Aliases []string
	// Args lists the expected argument types. Call converts each argument
	// before invoking Impl.
	Args []ArgType
	// Variadic, when true, accepts any number of arguments beyond Args;
	// the extras are passed through unconverted.
	Variadic bool
	Doc      string
	Impl     Impl

	module string
}

// Module is a named group of builtins.
type Module struct {
	Name  string
	Doc   string
	Funcs []FuncDef
}

var (
	registry = make(map[string]*Module)
	funcs    = make(map[string]*FuncDef)
)

// Register adds a module and all its functions and aliases to the global
// registry. Later registrations win on name clashes.
func Register(m *Module) {
	registry[m.Name] = m
	for i := range m.Funcs {
		f := &m.Funcs[i]
		f.module = m.Name
		funcs[f.Name] = f
		for _, a := range f.Aliases {
			funcs[a] = f
		}
	}
}

// Get returns a registered module by name.
func Get(name string) (*Module, bool) {
	m, ok := registry[name]
	return m, ok
}

// Lookup resolves a builtin by name or alias.
func Lookup(name string) (*FuncDef, bool) {
	f, ok := funcs[name]
	return f, ok
}

// Names returns sorted names of all registered modules.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Module returns the name of the module f was registered with.
func (f *FuncDef) Module() string { return f.module }

func (f *FuncDef) String() string { return "<builtin " + f.Name + ">" }

// TypeName names builtins in runtime error messages.
func (f *FuncDef) TypeName() string { return "builtin" }

// Call checks the arity, converts the arguments and invokes the
// implementation.
func (f *FuncDef) Call(args []any) (any, error) {
	if err := f.checkArity(len(args)); err != nil {
		return nil, err
	}
	conv := make([]any, len(args))
	for i, a := range args {
		if i >= len(f.Args) {
			conv[i] = a
			continue
		}
		v, err := convert(a, f.Args[i])
		if err != nil {
			return nil, diag.Runtimef(diag.TypeMismatch, "%s: argument %d must be %s, got %s",
				f.Name, i+1, f.Args[i], value.TypeName(a))
		}
		conv[i] = v
	}
	out, err := f.Impl(conv)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return value.None, nil
	}
	return out, nil
}

func (f *FuncDef) checkArity(n int) error {
	want := len(f.Args)
	switch {
	case f.Variadic && n < want:
		return diag.Runtimef(diag.ArityMismatch, "%s expects at least %d %s, got %d", f.Name, want, plural(want), n)
	case !f.Variadic && n != want:
		return diag.Runtimef(diag.ArityMismatch, "%s expects %d %s, got %d", f.Name, want, plural(want), n)
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "argument"
	}
	return "arguments"
}

var errConvert = fmt.Errorf("conversion failed")

func convert(v any, t ArgType) (any, error) {
	switch t {
	case String:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case Int:
		if i, ok := v.(int); ok {
			return i, nil
		}
	case Float:
		if f, ok := value.ToFloat(v); ok {
			return f, nil
		}
	case Bool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case Any:
		return v, nil
	}
	return nil, errConvert
}
