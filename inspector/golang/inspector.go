package golang

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"

	"github.com/viant/calltrace/inspector/info"
)

// Inspector provides functionality to inspect Go code and locate the function enclosing a source line
type Inspector struct {
	config *info.Config
}

// NewInspector creates a new Inspector with the provided configuration
func NewInspector(config *info.Config) *Inspector {
	if config == nil {
		config = info.DefaultConfig()
	}
	return &Inspector{config: config}
}

const defaultFilename = "source.go"

// InspectSource parses Go source code from a byte slice
func (i *Inspector) InspectSource(src []byte) (*File, error) {
	return i.parse(defaultFilename, src)
}

// InspectFile parses a Go source file
func (i *Inspector) InspectFile(filename string) (*File, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return i.parse(filename, src)
}

// Parse parses src and returns a function source
func (i *Inspector) Parse(filename string, src []byte) (info.Source, error) {
	return i.parse(filename, src)
}

func (i *Inspector) parse(filename string, src []byte) (*File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}
	return &File{fset: fset, file: file, src: src}, nil
}

// File represents a parsed Go source file
type File struct {
	fset *token.FileSet
	file *ast.File
	src  []byte
}

// Package returns the file package name
func (f *File) Package() string {
	return f.file.Name.Name
}

// Function returns the innermost function enclosing line
func (f *File) Function(line int) (*info.Function, error) {
	var target ast.Node
	ast.Inspect(f.file, func(n ast.Node) bool {
		if n == nil || !f.contains(n, line) {
			return false
		}
		switch node := n.(type) {
		case *ast.FuncDecl:
			if node.Body != nil {
				target = node
			}
		case *ast.FuncLit:
			target = node
		}
		return true
	})
	if target == nil {
		return nil, fmt.Errorf("%w: line %d", info.ErrFunctionNotFound, line)
	}

	fn := &info.Function{Location: &info.Location{Start: f.line(target.Pos()), End: f.line(target.End())}}
	var fnType *ast.FuncType
	var body *ast.BlockStmt
	switch node := target.(type) {
	case *ast.FuncDecl:
		fn.Name = node.Name.Name
		fnType, body = node.Type, node.Body
		if node.Recv != nil && len(node.Recv.List) > 0 {
			recv := node.Recv.List[0]
			fn.Receiver = &info.Parameter{Type: exprToString(recv.Type)}
			if len(recv.Names) > 0 {
				fn.Receiver.Name = recv.Names[0].Name
			}
			fn.Locals = append(fn.Locals, &info.Variable{Name: fn.Receiver.Name, Kind: info.KindReceiver, Type: fn.Receiver.Type, Line: fn.Location.Start})
		}
	case *ast.FuncLit:
		fn.Name = "func"
		fnType, body = node.Type, node.Body
	}

	fn.Parameters = parameters(fnType.Params)
	for _, param := range fn.Parameters {
		fn.Locals = append(fn.Locals, &info.Variable{Name: param.Name, Kind: info.KindParameter, Type: param.Type, Line: fn.Location.Start})
	}
	for _, stmt := range body.List {
		f.collectLocals(stmt, line, fn)
	}
	f.collectConstants(body, fn)
	return fn, nil
}

func parameters(list *ast.FieldList) []info.Parameter {
	if list == nil {
		return nil
	}
	var result []info.Parameter
	for _, field := range list.List {
		typ := exprToString(field.Type)
		if len(field.Names) == 0 {
			result = append(result, info.Parameter{Type: typ})
			continue
		}
		for _, name := range field.Names {
			result = append(result, info.Parameter{Name: name.Name, Type: typ})
		}
	}
	return result
}

func (f *File) contains(n ast.Node, line int) bool {
	return f.line(n.Pos()) <= line && line <= f.line(n.End())
}

func (f *File) line(pos token.Pos) int {
	return f.fset.Position(pos).Line
}

// text returns the source text between two positions
func (f *File) text(from, to token.Pos) string {
	start, end := f.fset.Position(from).Offset, f.fset.Position(to).Offset
	if start < 0 || end > len(f.src) || start > end {
		return ""
	}
	return string(f.src[start:end])
}

// valueText returns the value bound to the idx-th name of a multi-name binding
func (f *File) valueText(values []ast.Expr, idx, names int) string {
	if len(values) == 0 {
		return ""
	}
	if len(values) == names {
		return f.text(values[idx].Pos(), values[idx].End())
	}
	return f.text(values[0].Pos(), values[len(values)-1].End())
}
