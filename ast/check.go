package ast

import "fmt"

// Check validates an AST without modifying it.
type Check interface {
	Name() string
	Check(prog *Program) error
}

// CheckError is a finding at a statement offset.
type CheckError struct {
	Check  string
	Offset int
	Msg    string
}

func (e *CheckError) Error() string { return fmt.Sprintf("%s: %s", e.Check, e.Msg) }

// CheckErrors collects every finding of one check.
type CheckErrors []*CheckError

func (es CheckErrors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", es[0].Error(), len(es)-1)
}

func (es CheckErrors) err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

// CheckChain runs checks in order, stopping at the first error.
type CheckChain []Check

// Run executes each check in sequence. Returns nil if all pass.
func (cc CheckChain) Run(prog *Program) error {
	for _, c := range cc {
		if err := c.Check(prog); err != nil {
			return err
		}
	}
	return nil
}

// RunAll executes every check and returns all findings in check order.
func (cc CheckChain) RunAll(prog *Program) []*CheckError {
	var all []*CheckError
	for _, c := range cc {
		switch err := c.Check(prog).(type) {
		case nil:
		case CheckErrors:
			all = append(all, err...)
		case *CheckError:
			all = append(all, err)
		default:
			all = append(all, &CheckError{Check: c.Name(), Msg: err.Error()})
		}
	}
	return all
}

// Lint is the chain used by `tlang check`.
var Lint = CheckChain{DuplicateParams{}, ClassBody{}, DuplicateAlias{}}

// DuplicateParams reports functions that declare the same parameter twice.
type DuplicateParams struct{}

func (DuplicateParams) Name() string { return "duplicate-params" }

func (c DuplicateParams) Check(prog *Program) error {
	var errs CheckErrors
	Inspect(prog, func(n Node) bool {
		fn, ok := n.(*FunctionDef)
		if !ok {
			return true
		}
		seen := make(map[string]bool, len(fn.Params))
		for _, p := range fn.Params {
			if seen[p] {
				errs = append(errs, &CheckError{
					Check:  c.Name(),
					Offset: fn.Offset,
					Msg:    fmt.Sprintf("function %s declares parameter %q twice", fn.Name, p),
				})
			}
			seen[p] = true
		}
		return true
	})
	return errs.err()
}

// ClassBody reports class bodies holding anything other than function
// definitions. Such statements are never executed.
type ClassBody struct{}

func (ClassBody) Name() string { return "class-body" }

func (c ClassBody) Check(prog *Program) error {
	var errs CheckErrors
	Inspect(prog, func(n Node) bool {
		cls, ok := n.(*ClassDef)
		if !ok {
			return true
		}
		for _, s := range cls.Body {
			if _, ok := s.(*FunctionDef); !ok {
				errs = append(errs, &CheckError{
					Check:  c.Name(),
					Offset: s.StmtOffset(),
					Msg:    fmt.Sprintf("class %s: only function definitions are allowed in a class body", cls.Name),
				})
			}
		}
		return true
	})
	return errs.err()
}

// DuplicateAlias reports two imports bound to the same namespace name in
// one statement list.
type DuplicateAlias struct{}

func (DuplicateAlias) Name() string { return "duplicate-alias" }

func (c DuplicateAlias) Check(prog *Program) error {
	var errs CheckErrors
	seen := make(map[string]string)
	for _, s := range prog.Statements {
		imp, ok := s.(*ImportStatement)
		if !ok {
			continue
		}
		alias := imp.Namespace()
		if prev, dup := seen[alias]; dup && prev != imp.Path {
			errs = append(errs, &CheckError{
				Check:  c.Name(),
				Offset: imp.Offset,
				Msg:    fmt.Sprintf("import %q rebinds namespace %s already bound to %q", imp.Path, alias, prev),
			})
			continue
		}
		seen[alias] = imp.Path
	}
	return errs.err()
}
