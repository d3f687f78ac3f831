package strmod

import "github.com/tsegab/tlang/modules"

func init() {
	s := &Str{}
	modules.Register(&modules.Module{
		Name: "str",
		Doc:  "String and list helpers.",
		Funcs: []modules.FuncDef{
			{Name: "ርዝመት", Aliases: []string{"length"}, Args: []modules.ArgType{modules.Any}, Impl: s.Length,
				Doc: "Number of characters in a string or elements in a list."},
			{Name: "ተካ", Aliases: []string{"replace"}, Args: []modules.ArgType{modules.String, modules.String, modules.String}, Impl: s.Replace,
				Doc: "Replace every occurrence of old with new."},
			{Name: "ክፈል", Aliases: []string{"split"}, Args: []modules.ArgType{modules.String, modules.String}, Impl: s.Split,
				Doc: "Split a string around a separator."},
			{Name: "upper", Args: []modules.ArgType{modules.String}, Impl: s.Upper},
			{Name: "lower", Args: []modules.ArgType{modules.String}, Impl: s.Lower},
			{Name: "trim", Args: []modules.ArgType{modules.String}, Impl: s.Trim},
			{Name: "contains", Args: []modules.ArgType{modules.String, modules.String}, Impl: s.Contains},
		},
	})
}
