package golang

import (
	"go/ast"
	"go/token"

	"github.com/viant/calltrace/inspector/info"
)

// collectConstants appends local constant declarations and distinct literals of body
func (f *File) collectConstants(body *ast.BlockStmt, fn *info.Function) {
	seen := map[string]bool{}
	ast.Inspect(body, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.DeclStmt:
			genDecl, ok := node.Decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.CONST {
				return true
			}
			for _, spec := range genDecl.Specs {
				valueSpec, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for idx, name := range valueSpec.Names {
					constant := &info.Constant{
						Name: name.Name,
						Type: exprToString(valueSpec.Type),
						Line: f.line(name.Pos()),
					}
					if idx < len(valueSpec.Values) {
						constant.Value = f.text(valueSpec.Values[idx].Pos(), valueSpec.Values[idx].End())
					}
					fn.Constants = append(fn.Constants, constant)
				}
			}
			return false
		case *ast.BasicLit:
			kind := literalKind(node.Kind)
			if key := kind + ":" + node.Value; !seen[key] {
				seen[key] = true
				fn.Constants = append(fn.Constants, &info.Constant{Value: node.Value, Type: kind, Line: f.line(node.Pos())})
			}
		}
		return true
	})
}

// inspectConstants extracts package level constants
func (i *Inspector) inspectConstants(file *File) []*info.Symbol {
	var symbols []*info.Symbol
	for _, decl := range file.file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.CONST {
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
				var value string
				if idx < len(valueSpec.Values) {
					value = file.text(valueSpec.Values[idx].Pos(), valueSpec.Values[idx].End())
				}
				symbols = append(symbols, &info.Symbol{Name: name.Name, Kind: info.SymbolConst, Value: binding(typeName, value)})
			}
		}
	}
	return symbols
}
