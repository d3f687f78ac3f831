package interp

import (
	"maps"

	"github.com/tsegab/tlang/ast"
)

// Namespace is the public surface of an imported module: its top-level
// bindings and functions, keyed by name.
type Namespace map[string]any

// Environment holds the state one program runs against. The bindings table
// is swapped for a merged copy for the duration of each user function call.
type Environment struct {
	bindings  map[string]any
	functions map[string]*ast.FunctionDef
	classes   map[string]*ast.ClassDef
	modules   map[string]Namespace

	// dir is the directory imports are resolved against; empty means the
	// interpreter's base directory.
	dir string
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		bindings:  make(map[string]any),
		functions: make(map[string]*ast.FunctionDef),
		classes:   make(map[string]*ast.ClassDef),
		modules:   make(map[string]Namespace),
	}
}

// Lookup returns the value bound to name in the active bindings table.
func (e *Environment) Lookup(name string) (any, bool) {
	v, ok := e.bindings[name]
	return v, ok
}

// Set binds name in the active bindings table.
func (e *Environment) Set(name string, v any) { e.bindings[name] = v }

// Function returns a user function by name.
func (e *Environment) Function(name string) (*ast.FunctionDef, bool) {
	fn, ok := e.functions[name]
	return fn, ok
}

// Class returns a class definition by name.
func (e *Environment) Class(name string) (*ast.ClassDef, bool) {
	c, ok := e.classes[name]
	return c, ok
}

// Module returns the namespace imported under alias.
func (e *Environment) Module(alias string) (Namespace, bool) {
	ns, ok := e.modules[alias]
	return ns, ok
}

// namespace snapshots the module surface: bindings overlaid with functions.
func (e *Environment) namespace() Namespace {
	ns := make(Namespace, len(e.bindings)+len(e.functions))
	maps.Copy(ns, e.bindings)
	for name, fn := range e.functions {
		ns[name] = fn
	}
	return ns
}

// enter installs a merged scope: a copy of the active bindings with the
// parameters overlaid. When home is set, the function belongs to an imported
// module and the module's namespace, imports and classes sit under the
// active tables, so caller names shadow module names. The returned function
// restores the previous tables.
func (e *Environment) enter(home *Environment, params []string, args []any) (restore func()) {
	saved, savedMods, savedClasses := e.bindings, e.modules, e.classes

	merged := make(map[string]any, len(saved)+len(params))
	if home != nil {
		maps.Copy(merged, home.namespace())

		mods := maps.Clone(home.modules)
		maps.Copy(mods, savedMods)
		e.modules = mods

		classes := maps.Clone(home.classes)
		maps.Copy(classes, savedClasses)
		e.classes = classes
	}
	maps.Copy(merged, saved)
	for i, p := range params {
		merged[p] = args[i]
	}
	e.bindings = merged
	return func() { e.bindings, e.modules, e.classes = saved, savedMods, savedClasses }
}
