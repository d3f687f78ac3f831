package doc

import (
	"fmt"
	"strings"

	"github.com/tsegab/tlang/modules"
)

// FormatFile formats a FileDoc for terminal display. Undocumented
// declarations are left out.
func FormatFile(fd *FileDoc) string {
	var sb strings.Builder

	if fd.Doc != "" {
		sb.WriteString(fd.Doc)
		sb.WriteString("\n\n")
	}
	for _, c := range fd.Classes {
		if c.Doc == "" {
			continue
		}
		writeEntry(&sb, classSignature(c), c.Doc)
		sb.WriteString("\n")
	}
	for _, f := range fd.Funcs {
		if f.Doc == "" {
			continue
		}
		writeEntry(&sb, funcSignature(f), f.Doc)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatSymbol formats a single symbol lookup result.
func FormatSymbol(docStr, signature string) string {
	var sb strings.Builder
	writeEntry(&sb, signature, docStr)
	return sb.String()
}

// FormatModule formats a builtin catalog for terminal display.
func FormatModule(m *modules.Module) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "module %s\n", m.Name)
	if m.Doc != "" {
		sb.WriteString("    ")
		sb.WriteString(m.Doc)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	for _, f := range m.Funcs {
		writeEntry(&sb, BuiltinSignature(&f), f.Doc)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatAllModules lists every registered builtin catalog.
func FormatAllModules() string {
	var sb strings.Builder

	sb.WriteString("Builtin modules:\n")
	for _, name := range modules.Names() {
		m, _ := modules.Get(name)
		line := fmt.Sprintf("  %-8s", name)
		if m.Doc != "" {
			line += " " + m.Doc
		}
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// BuiltinSignature renders a builtin as name(types), followed by its
// aliases.
func BuiltinSignature(f *modules.FuncDef) string {
	params := make([]string, 0, len(f.Args)+1)
	for _, a := range f.Args {
		params = append(params, a.String())
	}
	if f.Variadic {
		params = append(params, "...")
	}
	sig := fmt.Sprintf("%s(%s)", f.Name, strings.Join(params, ", "))
	if len(f.Aliases) > 0 {
		sig += "  alias: " + strings.Join(f.Aliases, ", ")
	}
	return sig
}

func writeEntry(sb *strings.Builder, signature, docStr string) {
	sb.WriteString(signature)
	sb.WriteString("\n")
	if docStr != "" {
		sb.WriteString("    ")
		sb.WriteString(strings.ReplaceAll(docStr, "\n", "\n    "))
		sb.WriteString("\n")
	}
}
