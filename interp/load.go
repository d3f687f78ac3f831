package interp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tsegab/tlang/ast"
	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/parser"
)

// SourceExt is appended to import paths that have no extension.
const SourceExt = ".tl"

// importModule loads the module s names and binds its namespace in env.
// Each path is parsed and executed once per Interpreter; importing it
// again binds the cached namespace under the new alias.
func (i *Interpreter) importModule(env *Environment, s *ast.ImportStatement) error {
	path, err := i.resolve(env, s.Path)
	if err != nil {
		return err
	}
	for n, p := range i.loadStack {
		if p == path {
			return diag.Runtimef(diag.ImportCycle, "import cycle: %s", cyclePath(i.loadStack[n:], path))
		}
	}

	mod, ok := i.loaded[path]
	if ok {
		i.log.Debug("import cache hit", "path", path, "as", s.Namespace())
	} else {
		mod, err = i.load(path)
		if err != nil {
			return err
		}
	}
	env.modules[s.Namespace()] = mod.namespace()
	return nil
}

// resolve turns an import path into an absolute file name. Relative paths
// are taken from the directory of the importing source.
func (i *Interpreter) resolve(env *Environment, p string) (string, error) {
	if filepath.Ext(p) == "" {
		p += SourceExt
	}
	if !filepath.IsAbs(p) {
		base := env.dir
		if base == "" {
			base = i.dir
		}
		p = filepath.Join(base, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", diag.Runtimef(diag.ImportFailed, "resolve %s: %v", p, err)
	}
	return abs, nil
}

// load parses path and runs its declarations in a fresh Environment.
func (i *Interpreter) load(path string) (*Environment, error) {
	i.loadStack = append(i.loadStack, path)
	defer func() { i.loadStack = i.loadStack[:len(i.loadStack)-1] }()

	prog, err := i.parse(path)
	if err != nil {
		return nil, err
	}
	i.log.Debug("import", "path", path, "statements", len(prog.Statements))

	mod := NewEnvironment()
	mod.dir = filepath.Dir(path)

	prev := i.file
	i.file = path
	err = i.execBlock(mod, ast.Declarations.Transform(prog).Statements)
	i.file = prev
	if err != nil {
		return nil, err
	}

	for _, fn := range mod.functions {
		i.owners[fn] = mod
	}
	for _, cls := range mod.classes {
		for _, fn := range cls.Methods() {
			i.owners[fn] = mod
		}
	}
	i.loaded[path] = mod
	return mod, nil
}

func (i *Interpreter) parse(path string) (*ast.Program, error) {
	if prog, ok := i.parsed[path]; ok {
		i.log.Debug("parse cache hit", "path", path)
		return prog, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Wrapf(diag.ImportFailed, err, "cannot read %s: %v", path, err)
	}
	src := strings.TrimPrefix(string(data), "\ufeff")
	prog, err := parser.ParseSource(path, src)
	if err != nil {
		return nil, diag.Wrapf(diag.ImportFailed, err, "%s:%v", path, err)
	}
	i.parsed[path] = prog
	i.locators[path] = diag.NewLocator(path, prog.Source)
	return prog, nil
}

// cyclePath renders the chain "a.tl -> b.tl -> a.tl".
func cyclePath(stack []string, again string) string {
	names := make([]string, 0, len(stack)+1)
	for _, p := range stack {
		names = append(names, filepath.Base(p))
	}
	return strings.Join(append(names, filepath.Base(again)), " -> ")
}
