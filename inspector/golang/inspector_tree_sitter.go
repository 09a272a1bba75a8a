package golang

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/viant/calltrace/inspector/info"
)

// TreeSitterInspector provides functionality to inspect Go code using tree-sitter
type TreeSitterInspector struct {
	config *info.Config
}

// NewTreeSitterInspector creates a new TreeSitterInspector with the provided configuration
func NewTreeSitterInspector(config *info.Config) *TreeSitterInspector {
	if config == nil {
		config = info.DefaultConfig()
	}
	return &TreeSitterInspector{config: config}
}

// InspectSource parses Go source code from a byte slice
func (i *TreeSitterInspector) InspectSource(src []byte) (*TreeSitterFile, error) {
	return i.parse(defaultFilename, src)
}

// InspectFile parses a Go source file
func (i *TreeSitterInspector) InspectFile(filename string) (*TreeSitterFile, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return i.parse(filename, src)
}

// Parse parses src and returns a function source
func (i *TreeSitterInspector) Parse(filename string, src []byte) (info.Source, error) {
	return i.parse(filename, src)
}

func (i *TreeSitterInspector) parse(filename string, src []byte) (*TreeSitterFile, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}
	return &TreeSitterFile{tree: tree, src: src}, nil
}

// TreeSitterFile represents a Go source file parsed with tree-sitter
type TreeSitterFile struct {
	tree *sitter.Tree
	src  []byte
}

// Function returns the innermost function enclosing line
func (f *TreeSitterFile) Function(line int) (*info.Function, error) {
	if line < 1 {
		return nil, fmt.Errorf("%w: line %d", info.ErrFunctionNotFound, line)
	}
	target := enclosingFunction(f.tree.RootNode(), uint32(line-1))
	if target == nil {
		return nil, fmt.Errorf("%w: line %d", info.ErrFunctionNotFound, line)
	}

	fn := &info.Function{Name: "func", Location: &info.Location{Start: startLine(target), End: int(target.EndPoint().Row) + 1}}
	if target.Type() != "func_literal" {
		fn.Name = f.content(target.ChildByFieldName("name"))
	}
	if receiver := target.ChildByFieldName("receiver"); receiver != nil {
		if params := f.parameters(receiver); len(params) > 0 {
			fn.Receiver = &params[0]
			fn.Locals = append(fn.Locals, &info.Variable{Name: fn.Receiver.Name, Kind: info.KindReceiver, Type: fn.Receiver.Type, Line: fn.Location.Start})
		}
	}
	fn.Parameters = f.parameters(target.ChildByFieldName("parameters"))
	for _, param := range fn.Parameters {
		fn.Locals = append(fn.Locals, &info.Variable{Name: param.Name, Kind: info.KindParameter, Type: param.Type, Line: fn.Location.Start})
	}
	body := target.ChildByFieldName("body")
	for idx := 0; idx < int(body.NamedChildCount()); idx++ {
		f.collectLocals(body.NamedChild(idx), line, fn)
	}
	f.collectConstants(body, fn, map[string]bool{})
	return fn, nil
}

// enclosingFunction returns the deepest function node spanning row
func enclosingFunction(node *sitter.Node, row uint32) *sitter.Node {
	for idx := 0; idx < int(node.NamedChildCount()); idx++ {
		child := node.NamedChild(idx)
		if row < child.StartPoint().Row || row > child.EndPoint().Row {
			continue
		}
		if inner := enclosingFunction(child, row); inner != nil {
			return inner
		}
		switch child.Type() {
		case "function_declaration", "method_declaration", "func_literal":
			if child.ChildByFieldName("body") != nil {
				return child
			}
		}
	}
	return nil
}

func (f *TreeSitterFile) parameters(list *sitter.Node) []info.Parameter {
	if list == nil {
		return nil
	}
	var result []info.Parameter
	for idx := 0; idx < int(list.NamedChildCount()); idx++ {
		decl := list.NamedChild(idx)
		typeName := f.content(decl.ChildByFieldName("type"))
		switch decl.Type() {
		case "parameter_declaration":
		case "variadic_parameter_declaration":
			typeName = "..." + typeName
		default:
			continue
		}
		names := f.identifiers(decl)
		if len(names) == 0 {
			result = append(result, info.Parameter{Type: typeName})
			continue
		}
		for _, name := range names {
			result = append(result, info.Parameter{Name: name, Type: typeName})
		}
	}
	return result
}

// collectLocals appends the variables declared by node before line, nested function literals excluded
func (f *TreeSitterFile) collectLocals(node *sitter.Node, line int, fn *info.Function) {
	if startLine(node) >= line {
		return
	}
	switch node.Type() {
	case "func_literal":
		return
	case "short_var_declaration":
		values := f.expressions(node.ChildByFieldName("right"))
		names := f.identifiers(node.ChildByFieldName("left"))
		for idx, name := range names {
			f.appendLocal(fn, name, "", valueAt(values, idx, len(names)), startLine(node))
		}
	case "range_clause":
		if hasToken(node, ":=") {
			value := "range " + f.content(node.ChildByFieldName("right"))
			for _, name := range f.identifiers(node.ChildByFieldName("left")) {
				f.appendLocal(fn, name, "", value, startLine(node))
			}
		}
	case "type_switch_statement":
		if alias := node.ChildByFieldName("alias"); alias != nil {
			value := f.content(node.ChildByFieldName("value")) + ".(type)"
			for _, name := range f.identifiers(alias) {
				f.appendLocal(fn, name, "", value, startLine(node))
			}
		}
	case "var_spec":
		typeName := f.content(node.ChildByFieldName("type"))
		values := f.expressions(node.ChildByFieldName("value"))
		names := f.identifiers(node)
		for idx, name := range names {
			f.appendLocal(fn, name, typeName, valueAt(values, idx, len(names)), startLine(node))
		}
		return
	}
	for idx := 0; idx < int(node.NamedChildCount()); idx++ {
		f.collectLocals(node.NamedChild(idx), line, fn)
	}
}

func (f *TreeSitterFile) appendLocal(fn *info.Function, name, typeName, value string, line int) {
	if name == "_" {
		return
	}
	fn.Locals = append(fn.Locals, &info.Variable{Name: name, Kind: info.KindLocal, Type: typeName, Value: value, Line: line})
}

// collectConstants appends local constant declarations and distinct literals under node
func (f *TreeSitterFile) collectConstants(node *sitter.Node, fn *info.Function, seen map[string]bool) {
	switch node.Type() {
	case "func_literal":
		return
	case "const_spec":
		typeName := f.content(node.ChildByFieldName("type"))
		values := f.expressions(node.ChildByFieldName("value"))
		for idx, name := range f.identifiers(node) {
			constant := &info.Constant{Name: name, Type: typeName, Line: startLine(node)}
			if idx < len(values) {
				constant.Value = values[idx]
			}
			fn.Constants = append(fn.Constants, constant)
		}
		return
	}
	if kind, ok := literalKinds[node.Type()]; ok {
		value := f.content(node)
		if key := kind + ":" + value; !seen[key] {
			seen[key] = true
			fn.Constants = append(fn.Constants, &info.Constant{Value: value, Type: kind, Line: startLine(node)})
		}
		return
	}
	for idx := 0; idx < int(node.NamedChildCount()); idx++ {
		f.collectConstants(node.NamedChild(idx), fn, seen)
	}
}

var literalKinds = map[string]string{
	"int_literal":                "int",
	"float_literal":              "float",
	"imaginary_literal":          "imag",
	"rune_literal":               "char",
	"interpreted_string_literal": "string",
	"raw_string_literal":         "string",
}

// identifiers returns the direct identifier children of node
func (f *TreeSitterFile) identifiers(node *sitter.Node) []string {
	if node == nil {
		return nil
	}
	var result []string
	for idx := 0; idx < int(node.NamedChildCount()); idx++ {
		if child := node.NamedChild(idx); child.Type() == "identifier" {
			result = append(result, f.content(child))
		}
	}
	return result
}

// expressions returns the source text of each expression in an expression list
func (f *TreeSitterFile) expressions(node *sitter.Node) []string {
	if node == nil {
		return nil
	}
	if node.Type() != "expression_list" {
		return []string{f.content(node)}
	}
	var result []string
	for idx := 0; idx < int(node.NamedChildCount()); idx++ {
		result = append(result, f.content(node.NamedChild(idx)))
	}
	return result
}

func (f *TreeSitterFile) content(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(f.src)
}

func valueAt(values []string, idx, names int) string {
	if len(values) == names {
		return values[idx]
	}
	return strings.Join(values, ", ")
}

func hasToken(node *sitter.Node, token string) bool {
	for idx := 0; idx < int(node.ChildCount()); idx++ {
		if node.Child(idx).Type() == token {
			return true
		}
	}
	return false
}

func startLine(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}
