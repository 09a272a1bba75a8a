package golang

import (
	"go/ast"
	"go/token"

	"github.com/viant/calltrace/inspector/info"
)

// collectLocals appends the variables declared by stmt before line, nested function literals excluded
func (f *File) collectLocals(stmt ast.Stmt, line int, fn *info.Function) {
	ast.Inspect(stmt, func(n ast.Node) bool {
		if n == nil || f.line(n.Pos()) >= line {
			return false
		}
		switch node := n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.AssignStmt:
			if node.Tok != token.DEFINE {
				return true
			}
			for idx, lhs := range node.Lhs {
				ident, ok := lhs.(*ast.Ident)
				if !ok || ident.Name == "_" {
					continue
				}
				fn.Locals = append(fn.Locals, &info.Variable{
					Name:  ident.Name,
					Kind:  info.KindLocal,
					Value: f.valueText(node.Rhs, idx, len(node.Lhs)),
					Line:  f.line(ident.Pos()),
				})
			}
		case *ast.RangeStmt:
			if node.Tok != token.DEFINE {
				return true
			}
			for _, expr := range []ast.Expr{node.Key, node.Value} {
				ident, ok := expr.(*ast.Ident)
				if !ok || ident.Name == "_" {
					continue
				}
				fn.Locals = append(fn.Locals, &info.Variable{
					Name:  ident.Name,
					Kind:  info.KindLocal,
					Value: "range " + f.text(node.X.Pos(), node.X.End()),
					Line:  f.line(ident.Pos()),
				})
			}
		case *ast.DeclStmt:
			genDecl, ok := node.Decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.VAR {
				return false
			}
			for _, spec := range genDecl.Specs {
				valueSpec, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				typeName := exprToString(valueSpec.Type)
				for idx, name := range valueSpec.Names {
					if name.Name == "_" {
						continue
					}
					fn.Locals = append(fn.Locals, &info.Variable{
						Name:  name.Name,
						Kind:  info.KindLocal,
						Type:  typeName,
						Value: f.valueText(valueSpec.Values, idx, len(valueSpec.Names)),
						Line:  f.line(name.Pos()),
					})
				}
			}
			return false
		}
		return true
	})
}

// inspectVariables extracts package level variables
func (i *Inspector) inspectVariables(file *File) []*info.Symbol {
	var symbols []*info.Symbol
	for _, decl := range file.file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.VAR {
			continue
		}
		for _, spec := range genDecl.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			typeName := exprToString(valueSpec.Type)
			for idx, name := range valueSpec.Names {
				if name.Name == "_" || (!i.config.IncludeUnexported && !name.IsExported()) {
					continue
				}
				symbols = append(symbols, &info.Symbol{
					Name:  name.Name,
					Kind:  info.SymbolVar,
					Value: binding(typeName, file.valueText(valueSpec.Values, idx, len(valueSpec.Names))),
				})
			}
		}
	}
	return symbols
}

// binding joins a declared type and an initializer
func binding(typeName, value string) string {
	switch {
	case typeName != "" && value != "":
		return typeName + " = " + value
	case value != "":
		return value
	}
	return typeName
}
