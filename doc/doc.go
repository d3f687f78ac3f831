// Package doc extracts documentation from tlang source files.
//
// The extraction rule is simple: consecutive # lines immediately before a
// fun or class declaration (no blank line gap) are attached as the doc
// comment for that declaration. The first # block of the file is the
// file-level doc. Declarations are found with the parser, so both keyword
// scripts are handled; comments are read from the normalized source.
package doc

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tsegab/tlang/ast"
	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/parser"
)

// FileDoc holds all extracted documentation for a single tlang file.
type FileDoc struct {
	Path    string
	Doc     string // file-level doc (first # block before any code)
	Funcs   []FuncDoc
	Classes []ClassDoc
}

// FuncDoc describes a documented function.
type FuncDoc struct {
	Name   string   // e.g. "area" or "Shape.area"
	Params []string // parameter names
	Doc    string
	Line   int // 1-based line number of the fun keyword
}

// ClassDoc describes a documented class.
type ClassDoc struct {
	Name    string
	Methods []string
	Doc     string
	Line    int // 1-based line number of the class keyword
}

// ExtractFile reads a tlang file and extracts all documentation.
func ExtractFile(path string) (*FileDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(strings.TrimPrefix(string(data), "\ufeff"), path)
}

// ExtractDir reads all tlang files in a directory (non-recursive) and
// returns aggregated documentation sorted by file name. The first file
// with a file-level doc provides the top-level doc.
func ExtractDir(dir string) (*FileDoc, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	result := &FileDoc{Path: dir}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isSourceFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		fd, err := ExtractFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if result.Doc == "" {
			result.Doc = fd.Doc
		}
		result.Funcs = append(result.Funcs, fd.Funcs...)
		result.Classes = append(result.Classes, fd.Classes...)
	}
	return result, nil
}

// Extract parses src and returns structured documentation. Parse errors
// are returned unchanged.
func Extract(src, path string) (*FileDoc, error) {
	prog, err := parser.ParseSource(path, src)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(prog.Source, "\n")
	loc := diag.NewLocator(path, prog.Source)
	lineOf := func(s ast.Statement) int { return loc.Position(s.StmtOffset()).Line }

	fd := &FileDoc{Path: path, Doc: leadingComment(lines)}
	for _, s := range prog.Statements {
		switch s := s.(type) {
		case *ast.FunctionDef:
			fd.Funcs = append(fd.Funcs, funcDoc(s.Name, s, lines, lineOf(s)))
		case *ast.ClassDef:
			line := lineOf(s)
			cd := ClassDoc{Name: s.Name, Doc: commentAbove(lines, line), Line: line}
			for _, m := range s.Methods() {
				cd.Methods = append(cd.Methods, m.Name)
				fd.Funcs = append(fd.Funcs, funcDoc(s.Name+"."+m.Name, m, lines, lineOf(m)))
			}
			fd.Classes = append(fd.Classes, cd)
		}
	}
	return fd, nil
}

func funcDoc(name string, fn *ast.FunctionDef, lines []string, line int) FuncDoc {
	return FuncDoc{Name: name, Params: fn.Params, Doc: commentAbove(lines, line), Line: line}
}

// commentAbove collects the # lines directly above the 1-based line.
func commentAbove(lines []string, line int) string {
	var block []string
	for i := line - 2; i >= 0; i-- {
		text, ok := commentText(lines[i])
		if !ok {
			break
		}
		block = append([]string{text}, block...)
	}
	return strings.Join(block, "\n")
}

// leadingComment returns the first # block of the file, skipping blank
// lines before it.
func leadingComment(lines []string) string {
	var block []string
	for _, l := range lines {
		if text, ok := commentText(l); ok {
			block = append(block, text)
			continue
		}
		if strings.TrimSpace(l) == "" && len(block) == 0 {
			continue
		}
		break
	}
	return strings.Join(block, "\n")
}

func commentText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	return strings.TrimPrefix(trimmed[1:], " "), true
}

func isSourceFile(name string) bool {
	return strings.HasSuffix(name, ".tl")
}

// LookupSymbol finds a specific function or class by name in a FileDoc.
func LookupSymbol(fd *FileDoc, name string) (doc string, signature string, found bool) {
	for _, f := range fd.Funcs {
		if f.Name == name {
			return f.Doc, funcSignature(f), true
		}
	}
	for _, c := range fd.Classes {
		if c.Name == name {
			return c.Doc, classSignature(c), true
		}
	}
	return "", "", false
}

func funcSignature(f FuncDoc) string {
	return "fun " + f.Name + "(" + strings.Join(f.Params, ", ") + ")"
}

func classSignature(c ClassDoc) string {
	sig := "class " + c.Name
	if len(c.Methods) > 0 {
		sig += " { " + strings.Join(c.Methods, ", ") + " }"
	}
	return sig
}
