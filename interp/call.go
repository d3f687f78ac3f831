package interp

import (
	"github.com/tsegab/tlang/ast"
	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/modules"
	"github.com/tsegab/tlang/value"
)

// call resolves the callee of c and invokes it with arguments evaluated in
// the caller's scope. User functions always yield none.
func (i *Interpreter) call(env *Environment, c *ast.FunctionCall) (any, error) {
	switch callee := c.Callee.(type) {
	case *ast.Variable:
		name := callee.Name
		if fn, ok := env.Function(name); ok {
			return i.callValue(env, name, fn, c.Args)
		}
		if v, ok := env.Lookup(name); ok {
			return i.callValue(env, name, v, c.Args)
		}
		if fn, ok := modules.Lookup(name); ok {
			return i.callValue(env, name, fn, c.Args)
		}
		if _, ok := env.Class(name); ok {
			members, err := memberNames(name, c.Args)
			if err != nil {
				return nil, err
			}
			return i.instantiate(env, name, members)
		}
		return nil, diag.Runtimef(diag.UndefinedName, "function %q is not defined", name)
	case *ast.ModuleMemberAccess:
		v, err := i.member(env, callee.Target, callee.Member)
		if err != nil {
			return nil, err
		}
		return i.callValue(env, c.CalleeName(), v, c.Args)
	}
	return nil, diag.Runtimef(diag.NotCallable, "%s is not callable", c.CalleeName())
}

// memberNames accepts the bare identifiers of a class instantiation that
// was not recognized while parsing, because the class was declared later.
func memberNames(class string, args []ast.Expr) ([]string, error) {
	names := make([]string, len(args))
	for n, a := range args {
		v, ok := a.(*ast.Variable)
		if !ok {
			return nil, diag.Runtimef(diag.ArityMismatch, "class %s takes method names, not values", class)
		}
		names[n] = v.Name
	}
	return names, nil
}

func (i *Interpreter) callValue(env *Environment, name string, callee any, argExprs []ast.Expr) (any, error) {
	switch fn := callee.(type) {
	case *ast.FunctionDef:
		args, err := i.args(env, argExprs)
		if err != nil {
			return nil, err
		}
		return value.None, i.CallFunction(env, fn, args)
	case *modules.FuncDef:
		args, err := i.args(env, argExprs)
		if err != nil {
			return nil, err
		}
		i.log.Debug("builtin", "name", fn.Name, "module", fn.Module())
		return fn.Call(args)
	}
	return nil, diag.Runtimef(diag.NotCallable, "%s (%s) is not callable", name, value.TypeName(callee))
}

func (i *Interpreter) args(env *Environment, exprs []ast.Expr) ([]any, error) {
	args := make([]any, len(exprs))
	for n, e := range exprs {
		v, err := i.Evaluate(env, e)
		if err != nil {
			return nil, err
		}
		args[n] = v
	}
	return args, nil
}

// CallFunction runs fn with args bound to its parameters in a merged scope:
// a copy of the caller's active bindings with the parameters overlaid. The
// previous bindings are restored when the call returns, including on error.
// A function imported from a module also sees the module's top-level names,
// beneath the caller's.
func (i *Interpreter) CallFunction(env *Environment, fn *ast.FunctionDef, args []any) error {
	if len(args) != len(fn.Params) {
		return diag.Runtimef(diag.ArityMismatch, "%s expects %d %s, got %d",
			fn.Name, len(fn.Params), plural(len(fn.Params)), len(args))
	}
	if i.depth >= i.maxDepth {
		return diag.Runtimef(diag.RecursionLimit, "maximum call depth %d exceeded in %s", i.maxDepth, fn.Name)
	}
	restore := env.enter(i.owners[fn], fn.Params, args)
	defer restore()

	i.depth++
	defer func() { i.depth-- }()

	if fn.SourceFile != "" {
		prev := i.file
		i.file = fn.SourceFile
		defer func() { i.file = prev }()
	}

	i.log.Debug("call", "function", fn.Name, "depth", i.depth)
	return i.execBlock(env, fn.Body)
}

func plural(n int) string {
	if n == 1 {
		return "argument"
	}
	return "arguments"
}
