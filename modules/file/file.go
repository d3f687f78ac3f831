package filemod

import "github.com/tsegab/tlang/modules"

func init() {
	f := &File{}
	modules.Register(&modules.Module{
		Name: "file",
		Doc:  "File input and output.",
		Funcs: []modules.FuncDef{
			{Name: "ክፈት", Aliases: []string{"open"}, Args: []modules.ArgType{modules.String, modules.String}, Impl: f.Open,
				Doc: "Open a file with mode r, w, a, r+, w+ or a+ and return a handle."},
			{Name: "አንብብ", Aliases: []string{"read"}, Args: []modules.ArgType{modules.Any}, Impl: f.Read,
				Doc: "Read the rest of a handle, or the whole file at a path."},
			{Name: "ጻፍ", Aliases: []string{"write"}, Args: []modules.ArgType{modules.Any, modules.Any}, Impl: f.Write,
				Doc: "Write content to a handle, or replace the file at a path."},
			{Name: "ዝጋ", Aliases: []string{"close"}, Args: []modules.ArgType{modules.Any}, Impl: f.Close,
				Doc: "Close a handle. Anything else is ignored."},
		},
	})
}
