package ast

// Transform rewrites an AST. Implementations must not mutate the input program.
type Transform interface {
	Name() string
	Transform(prog *Program) *Program
}

// TransformFunc adapts a named function to the Transform interface.
type TransformFunc struct {
	N string
	F func(*Program) *Program
}

func (t TransformFunc) Name() string                     { return t.N }
func (t TransformFunc) Transform(prog *Program) *Program { return t.F(prog) }

// Filter keeps the top-level statements for which keep returns true.
// The input program is returned unchanged when nothing is dropped.
func Filter(name string, keep func(Statement) bool) Transform {
	return TransformFunc{
		N: name,
		F: func(prog *Program) *Program {
			var out []Statement
			dropped := false
			for i, s := range prog.Statements {
				if keep(s) {
					if dropped {
						out = append(out, s)
					}
					continue
				}
				if !dropped {
					out = append(make([]Statement, 0, len(prog.Statements)), prog.Statements[:i]...)
					dropped = true
				}
			}
			if !dropped {
				return prog
			}
			cp := *prog
			cp.Statements = out
			return &cp
		},
	}
}

// Declarations keeps only the statements an imported module executes:
// assignments, function and class definitions, and nested imports.
var Declarations = Filter("declarations", func(s Statement) bool {
	switch s.(type) {
	case *Assign, *ListIndexAssign, *FunctionDef, *ClassDef, *ImportStatement:
		return true
	}
	return false
})
