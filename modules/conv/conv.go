package convmod

import "github.com/tsegab/tlang/modules"

func init() {
	c := &Conv{}
	modules.Register(&modules.Module{
		Name: "conv",
		Doc:  "Conversions between numbers and strings.",
		Funcs: []modules.FuncDef{
			{Name: "ቁጥር", Aliases: []string{"int"}, Args: []modules.ArgType{modules.Any}, Impl: c.Int,
				Doc: "Convert to an integer. Floats are truncated toward zero."},
			{Name: "float", Args: []modules.ArgType{modules.Any}, Impl: c.Float, Doc: "Convert to a float."},
			{Name: "ጽሑፍ", Aliases: []string{"str"}, Args: []modules.ArgType{modules.Any}, Impl: c.Str,
				Doc: "Format any value the way out prints it."},
		},
	})
}
