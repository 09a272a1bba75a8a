package info

// SymbolKind represents a package level declaration kind
type SymbolKind string

const (
	SymbolConst SymbolKind = "const"
	SymbolVar   SymbolKind = "var"
	SymbolType  SymbolKind = "type"
	SymbolFunc  SymbolKind = "func"
)

// Symbol represents a package level declaration
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Value string // declared type, value or signature
}

// Package represents the package level symbols of a Go package
type Package struct {
	Name       string
	ImportPath string
	Dir        string
	Symbols    []*Symbol
}

// SymbolMap returns symbols keyed by qualified name
func (p *Package) SymbolMap() map[string]string {
	prefix := p.ImportPath
	if prefix == "" {
		prefix = p.Name
	}
	result := make(map[string]string, len(p.Symbols))
	for _, symbol := range p.Symbols {
		result[prefix+"."+symbol.Name] = string(symbol.Kind) + " " + symbol.Value
	}
	return result
}
