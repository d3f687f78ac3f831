package ast

// Inspect traverses the tree rooted at n in depth-first order. fn is called
// for each node; traversal skips the children of a node for which fn
// returns false.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Program:
		inspectStmts(n.Statements, fn)
	case *Assign:
		Inspect(n.Value, fn)
	case *ListIndexAssign:
		Inspect(n.Index, fn)
		Inspect(n.Value, fn)
	case *ExprStmt:
		Inspect(n.Expression, fn)
	case *Conditional:
		Inspect(n.Cond, fn)
		inspectStmts(n.Body, fn)
		if n.ElifCond != nil {
			Inspect(n.ElifCond, fn)
			inspectStmts(n.ElifBody, fn)
		}
		inspectStmts(n.ElseBody, fn)
	case *WhileLoop:
		Inspect(n.Cond, fn)
		inspectStmts(n.Body, fn)
	case *ForLoop:
		Inspect(n.Start, fn)
		Inspect(n.End, fn)
		inspectStmts(n.Body, fn)
	case *FunctionDef:
		inspectStmts(n.Body, fn)
	case *ClassDef:
		inspectStmts(n.Body, fn)
	case *Print:
		Inspect(n.Value, fn)
	case *Input:
		if n.Prompt != nil {
			Inspect(n.Prompt, fn)
		}
	case *BinOp:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *ListLiteral:
		for _, e := range n.Elements {
			Inspect(e, fn)
		}
	case *ListIndex:
		Inspect(n.Index, fn)
	case *FunctionCall:
		Inspect(n.Callee, fn)
		for _, a := range n.Args {
			Inspect(a, fn)
		}
	case *ImportStatement, *Number, *String, *Variable, *ModuleMemberAccess, *ClassInstantiate:
		// leaves
	}
}

func inspectStmts(stmts []Statement, fn func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, fn)
	}
}
