package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/tsegab/tlang/ast"
	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/modules"
	"github.com/tsegab/tlang/value"
)

// Evaluate computes the value of e against env.
func (i *Interpreter) Evaluate(env *Environment, e ast.Expr) (any, error) {
	switch e := e.(type) {
	case *ast.Number:
		return e.Value, nil
	case *ast.String:
		return e.Value, nil
	case *ast.Variable:
		return i.variable(env, e.Name)
	case *ast.BinOp:
		return i.binop(env, e)
	case *ast.ListLiteral:
		items := make([]any, len(e.Elements))
		for n, el := range e.Elements {
			v, err := i.Evaluate(env, el)
			if err != nil {
				return nil, err
			}
			items[n] = v
		}
		return value.NewList(items...), nil
	case *ast.ListIndex:
		return i.listIndex(env, e)
	case *ast.FunctionCall:
		return i.call(env, e)
	case *ast.ModuleMemberAccess:
		return i.member(env, e.Target, e.Member)
	case *ast.ClassInstantiate:
		return i.instantiate(env, e.Name, e.Members)
	case *ast.Print:
		return value.None, i.print(env, e)
	case *ast.Input:
		return i.input(env, e)
	}
	return nil, fmt.Errorf("interp: cannot evaluate %T", e)
}

func (i *Interpreter) variable(env *Environment, name string) (any, error) {
	if v, ok := env.Lookup(name); ok {
		return v, nil
	}
	if fn, ok := modules.Lookup(name); ok {
		return fn, nil
	}
	return nil, diag.Runtimef(diag.UndefinedName, "name %q is not defined", name)
}

func (i *Interpreter) listIndex(env *Environment, e *ast.ListIndex) (any, error) {
	target, ok := env.Lookup(e.Name)
	if !ok {
		return nil, diag.Runtimef(diag.UndefinedName, "name %q is not defined", e.Name)
	}
	idx, err := i.index(env, e.Index)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *value.List:
		n, ok := value.Index(idx, t.Len())
		if !ok {
			return nil, diag.Runtimef(diag.IndexOutOfRange, "index %d out of range for %s of length %d", idx, e.Name, t.Len())
		}
		return t.Items[n], nil
	case string:
		runes := []rune(t)
		n, ok := value.Index(idx, len(runes))
		if !ok {
			return nil, diag.Runtimef(diag.IndexOutOfRange, "index %d out of range for %s of length %d", idx, e.Name, len(runes))
		}
		return string(runes[n]), nil
	}
	return nil, diag.Runtimef(diag.TypeMismatch, "%s is a %s, not a list", e.Name, value.TypeName(target))
}

func (i *Interpreter) index(env *Environment, e ast.Expr) (int, error) {
	v, err := i.Evaluate(env, e)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, diag.Runtimef(diag.TypeMismatch, "list index must be int, got %s", value.TypeName(v))
	}
	return n, nil
}

// member resolves target.name against the imported modules, then the
// declared classes, then an instance bound to target.
func (i *Interpreter) member(env *Environment, target, name string) (any, error) {
	if ns, ok := env.Module(target); ok {
		if v, ok := ns[name]; ok {
			return v, nil
		}
		return nil, diag.Runtimef(diag.UndefinedMember, "module %s has no member %q", target, name)
	}
	if cls, ok := env.Class(target); ok {
		if fn, ok := cls.Method(name); ok {
			return fn, nil
		}
		return nil, diag.Runtimef(diag.UndefinedMember, "class %s has no method %q", target, name)
	}
	v, ok := env.Lookup(target)
	if !ok {
		return nil, diag.Runtimef(diag.UndefinedMember, "%s is not a module, class or instance", target)
	}
	inst, ok := v.(*value.Instance)
	if !ok {
		return nil, diag.Runtimef(diag.UndefinedMember, "%s (%s) has no member %q", target, value.TypeName(v), name)
	}
	if fn, ok := inst.Method(name); ok {
		return fn, nil
	}
	return nil, diag.Runtimef(diag.UndefinedMember, "%s instance has no method %q", inst.Class, name)
}

// instantiate builds an instance of the named class holding the selected
// methods, or every method when none are named.
func (i *Interpreter) instantiate(env *Environment, name string, members []string) (*value.Instance, error) {
	cls, ok := env.Class(name)
	if !ok {
		return nil, diag.Runtimef(diag.UndefinedName, "class %q is not defined", name)
	}
	inst := &value.Instance{Class: name, Methods: make(map[string]*ast.FunctionDef)}
	if len(members) == 0 {
		for _, fn := range cls.Methods() {
			inst.Methods[fn.Name] = fn
		}
		return inst, nil
	}
	for _, m := range members {
		fn, ok := cls.Method(m)
		if !ok {
			return nil, diag.Runtimef(diag.UndefinedMember, "class %s has no method %q", name, m)
		}
		inst.Methods[m] = fn
	}
	return inst, nil
}

func (i *Interpreter) print(env *Environment, p *ast.Print) error {
	v, err := i.Evaluate(env, p.Value)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(i.out, value.Format(v)+"\n"); err != nil {
		return diag.Runtimef(diag.IOError, "write output: %v", err)
	}
	return nil
}

// input writes the optional prompt without a newline and reads one line.
// The line terminator is stripped; a final line without one is returned
// as is.
func (i *Interpreter) input(env *Environment, in *ast.Input) (any, error) {
	if in.Prompt != nil {
		prompt, err := i.Evaluate(env, in.Prompt)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(i.out, value.Format(prompt)); err != nil {
			return nil, diag.Runtimef(diag.IOError, "write output: %v", err)
		}
	}
	line, err := i.in.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return nil, diag.Runtimef(diag.IOError, "read input: %v", err)
		}
		if line == "" {
			return nil, diag.Runtimef(diag.EndOfInput, "end of input")
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
