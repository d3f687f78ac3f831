package randmod

import "github.com/tsegab/tlang/modules"

func init() {
	r := &Rand{}
	modules.Register(&modules.Module{
		Name: "rand",
		Doc:  "Random numbers.",
		Funcs: []modules.FuncDef{
			{Name: "randint", Args: []modules.ArgType{modules.Int, modules.Int}, Impl: r.Int, Doc: "Return a random integer in [a, b], both ends included."},
			{Name: "random", Impl: r.Float, Doc: "Return a random float in [0.0, 1.0)."},
		},
	})
}
