package golang

import (
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"strings"
)

// formatFuncType formats a function type as a string
func formatFuncType(name string, fn *ast.FuncType) string {
	var sb strings.Builder
	sb.WriteString("func " + name + "(")

	if fn.Params != nil {
		var params []string
		for _, param := range fn.Params.List {
			paramType := exprToString(param.Type)
			if len(param.Names) == 0 {
				params = append(params, paramType)
			} else {
				for _, name := range param.Names {
					params = append(params, name.Name+" "+paramType)
				}
			}
		}
		sb.WriteString(strings.Join(params, ", "))
	}

	sb.WriteString(")")

	if fn.Results != nil {
		if len(fn.Results.List) == 1 && len(fn.Results.List[0].Names) == 0 {
			// Single unnamed result
			sb.WriteString(" " + exprToString(fn.Results.List[0].Type))
		} else {
			sb.WriteString(" (")
			var results []string
			for _, result := range fn.Results.List {
				resultType := exprToString(result.Type)
				if len(result.Names) == 0 {
					results = append(results, resultType)
				} else {
					for _, name := range result.Names {
						results = append(results, name.Name+" "+resultType)
					}
				}
			}
			sb.WriteString(strings.Join(results, ", "))
			sb.WriteString(")")
		}
	}

	return sb.String()
}

// exprToString converts an AST expression to a type string
func exprToString(expr ast.Expr) string {
	if expr == nil {
		return ""
	}

	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name

	case *ast.SelectorExpr:
		return exprToString(t.X) + "." + t.Sel.Name

	case *ast.StarExpr:
		return "*" + exprToString(t.X)

	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + exprToString(t.Elt)
		}
		return "[" + exprToString(t.Len) + "]" + exprToString(t.Elt)

	case *ast.MapType:
		return "map[" + exprToString(t.Key) + "]" + exprToString(t.Value)

	case *ast.InterfaceType:
		return "interface{}"

	case *ast.ChanType:
		var prefix string
		switch t.Dir {
		case ast.RECV:
			prefix = "<-chan "
		case ast.SEND:
			prefix = "chan<- "
		default:
			prefix = "chan "
		}
		return prefix + exprToString(t.Value)

	case *ast.FuncType:
		return formatFuncType("", t)

	case *ast.BasicLit:
		return t.Value

	case *ast.IndexExpr: // For simple generics like List[T]
		return exprToString(t.X) + "[" + exprToString(t.Index) + "]"

	case *ast.IndexListExpr: // For generics with multiple parameters like Map[K, V]
		params := make([]string, 0, len(t.Indices))
		for _, idx := range t.Indices {
			params = append(params, exprToString(idx))
		}
		return exprToString(t.X) + "[" + strings.Join(params, ", ") + "]"

	case *ast.Ellipsis: // For variadic parameters like ...T
		return "..." + exprToString(t.Elt)

	case *ast.StructType:
		return "struct{...}"

	case *ast.UnaryExpr:
		return t.Op.String() + exprToString(t.X)

	case *ast.BinaryExpr:
		return exprToString(t.X) + " " + t.Op.String() + " " + exprToString(t.Y)

	case *ast.CompositeLit:
		return exprToString(t.Type) + "{...}"

	case *ast.ParenExpr:
		return "(" + exprToString(t.X) + ")"

	default:
		return fmt.Sprintf("<%T>", expr)
	}
}

// literalKind returns the constant pool kind of a basic literal token
func literalKind(kind token.Token) string {
	switch kind {
	case token.INT:
		return "int"
	case token.FLOAT:
		return "float"
	case token.IMAG:
		return "imag"
	case token.CHAR:
		return "char"
	case token.STRING:
		return "string"
	}
	return strings.ToLower(kind.String())
}

// isGoSource checks if a directory entry is a Go file worth inspecting
func isGoSource(entry os.DirEntry, skipTests bool) bool {
	if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
		return false
	}
	return !skipTests || !strings.HasSuffix(entry.Name(), "_test.go")
}
