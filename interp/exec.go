package interp

import (
	"fmt"

	"github.com/tsegab/tlang/ast"
	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/value"
)

func (i *Interpreter) execBlock(env *Environment, stmts []ast.Statement) error {
	for _, s := range stmts {
		if err := i.Execute(env, s); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs one statement against env. A runtime error that escapes it
// is located at the innermost statement that raised it.
func (i *Interpreter) Execute(env *Environment, s ast.Statement) error {
	if err := i.execute(env, s); err != nil {
		return i.locate(err, s)
	}
	return nil
}

func (i *Interpreter) execute(env *Environment, s ast.Statement) error {
	switch s := s.(type) {
	case *ast.Assign:
		v, err := i.Evaluate(env, s.Value)
		if err != nil {
			return err
		}
		env.Set(s.Name, v)
		return nil
	case *ast.ListIndexAssign:
		return i.listIndexAssign(env, s)
	case *ast.ExprStmt:
		_, err := i.Evaluate(env, s.Expression)
		return err
	case *ast.Print:
		return i.print(env, s)
	case *ast.Input:
		_, err := i.input(env, s)
		return err
	case *ast.Conditional:
		return i.conditional(env, s)
	case *ast.WhileLoop:
		for {
			cond, err := i.Evaluate(env, s.Cond)
			if err != nil {
				return err
			}
			if !value.Truthy(cond) {
				return nil
			}
			if err := i.execBlock(env, s.Body); err != nil {
				return err
			}
		}
	case *ast.ForLoop:
		return i.forLoop(env, s)
	case *ast.FunctionDef:
		env.functions[s.Name] = s
		return nil
	case *ast.ClassDef:
		env.classes[s.Name] = s
		return nil
	case *ast.ImportStatement:
		return i.importModule(env, s)
	}
	return fmt.Errorf("interp: cannot execute %T", s)
}

func (i *Interpreter) listIndexAssign(env *Environment, s *ast.ListIndexAssign) error {
	target, ok := env.Lookup(s.Name)
	if !ok {
		return diag.Runtimef(diag.UndefinedName, "name %q is not defined", s.Name)
	}
	list, ok := target.(*value.List)
	if !ok {
		return diag.Runtimef(diag.TypeMismatch, "%s is a %s, not a list", s.Name, value.TypeName(target))
	}
	idx, err := i.index(env, s.Index)
	if err != nil {
		return err
	}
	v, err := i.Evaluate(env, s.Value)
	if err != nil {
		return err
	}
	n, ok := value.Index(idx, list.Len())
	if !ok {
		return diag.Runtimef(diag.IndexOutOfRange, "index %d out of range for %s of length %d", idx, s.Name, list.Len())
	}
	list.Items[n] = v
	return nil
}

func (i *Interpreter) conditional(env *Environment, s *ast.Conditional) error {
	cond, err := i.Evaluate(env, s.Cond)
	if err != nil {
		return err
	}
	if value.Truthy(cond) {
		return i.execBlock(env, s.Body)
	}
	if s.ElifCond != nil {
		cond, err := i.Evaluate(env, s.ElifCond)
		if err != nil {
			return err
		}
		if value.Truthy(cond) {
			return i.execBlock(env, s.ElifBody)
		}
	}
	return i.execBlock(env, s.ElseBody)
}

// forLoop binds the loop variable to each int in [start, end). The bounds
// are evaluated once.
func (i *Interpreter) forLoop(env *Environment, s *ast.ForLoop) error {
	start, err := i.bound(env, s.Start, "start")
	if err != nil {
		return err
	}
	end, err := i.bound(env, s.End, "end")
	if err != nil {
		return err
	}
	for n := start; n < end; n++ {
		env.Set(s.Var, n)
		if err := i.execBlock(env, s.Body); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) bound(env *Environment, e ast.Expr, which string) (int, error) {
	v, err := i.Evaluate(env, e)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, diag.Runtimef(diag.TypeMismatch, "for loop %s must be int, got %s", which, value.TypeName(v))
	}
	return n, nil
}
