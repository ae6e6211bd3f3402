package analyzer

import (
	"strings"

	"github.com/thu-info-community/thu-info-code-scan/internal/parser"
	"github.com/thu-info-community/thu-info-code-scan/internal/registry"
	"github.com/thu-info-community/thu-info-code-scan/internal/syntax"
)

const (
	kindExportStatement     = "export_statement"
	kindAmbientDeclaration  = "ambient_declaration"
	kindLexicalDeclaration  = "lexical_declaration"
	kindVariableDeclaration = "variable_declaration"
	kindVariableDeclarator  = "variable_declarator"
	kindHashBangLine        = "hash_bang_line"
	kindDecorator           = "decorator"
)

// allowedTopLevel are the declarations a library file may contain besides
// variable declarations. Each is accepted without inspection.
var allowedTopLevel = map[string]bool{
	"import_statement":       true,
	"import_alias":           true,
	"type_alias_declaration": true,
	"enum_declaration":       true,
}

// scanPasswords checks the top level of a library file and reports every
// declaration built from helper.password:
//
//	export const loginLibraryRoomBooking = helper.password(...)
//
// Anything at the top level other than imports, type aliases, enums and
// variable declarations fails the scan. Nested code is not inspected.
func scanPasswords(file *parser.File, reg *registry.Registry, sink Sink) error {
	if reg.Skipped(file.Name) {
		return nil
	}

	for _, stmt := range file.Root.Children() {
		switch stmt.Kind() {
		case syntax.KindComment, kindHashBangLine:
			continue
		}

		decl := stmt
		if stmt.Kind() == kindExportStatement {
			decl = exportedDeclaration(stmt)
			if decl == nil {
				return newError(UnexpectedTopLevelDeclaration, firstLine(stmt.Text()), locate(file, stmt))
			}
		}
		// "declare ..." is classified by the declaration it wraps
		if decl.Kind() == kindAmbientDeclaration {
			decl = exportedDeclaration(decl)
			if decl == nil {
				return newError(UnexpectedTopLevelDeclaration, firstLine(stmt.Text()), locate(file, stmt))
			}
		}

		switch {
		case allowedTopLevel[decl.Kind()]:
			continue
		case decl.Kind() == kindLexicalDeclaration || decl.Kind() == kindVariableDeclaration:
			if !strings.Contains(stmt.Text(), reg.PasswordMarker()) {
				continue
			}
			if err := reportPassword(file, reg, sink, decl); err != nil {
				return err
			}
		default:
			return newError(UnexpectedTopLevelDeclaration, firstLine(stmt.Text()), locate(file, stmt))
		}
	}
	return nil
}

// exportedDeclaration returns what an export statement or an ambient
// declaration wraps, which is its first named child
func exportedDeclaration(stmt syntax.Node) syntax.Node {
	for _, c := range syntax.NamedChildren(stmt) {
		if c.Kind() == kindDecorator {
			continue
		}
		return c
	}
	return nil
}

func reportPassword(file *parser.File, reg *registry.Registry, sink Sink, decl syntax.Node) error {
	name := declaredName(decl)
	login, ok := reg.Password(name)
	if !ok {
		return newError(UnrecognizedPasswordUsage, name, locate(file, decl))
	}
	return sink.Report(Usage{
		Kind:       KindPasswordLogin,
		Descriptor: login,
		Location:   locate(file, decl),
	})
}

// declaredName is the name (or destructuring pattern) of the first declarator
func declaredName(decl syntax.Node) string {
	declarator := syntax.ChildOfKind(decl, kindVariableDeclarator)
	if declarator == nil {
		return ""
	}
	children := declarator.Children()
	if len(children) == 0 {
		return ""
	}
	return children[0].Text()
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}
