package golang

import (
	"fmt"
	"go/ast"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/calltrace/inspector/info"
)

// InspectPackage inspects a Go package directory and extracts its package level symbols
// This version loads only one package per folder (no recursive option)
func (i *Inspector) InspectPackage(packagePath string) (*info.Package, error) {
	absPath, err := filepath.Abs(packagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	entries, err := os.ReadDir(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", absPath, err)
	}

	pkg := &info.Package{Dir: absPath}
	for _, entry := range entries {
		if !isGoSource(entry, i.config.SkipTests) {
			continue
		}
		file, err := i.InspectFile(filepath.Join(absPath, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("error processing package in %s: %w", absPath, err)
		}
		// external test packages share the folder
		if pkg.Name == "" {
			pkg.Name = file.Package()
		} else if file.Package() != pkg.Name {
			continue
		}
		pkg.Symbols = append(pkg.Symbols, i.inspectConstants(file)...)
		pkg.Symbols = append(pkg.Symbols, i.inspectVariables(file)...)
		pkg.Symbols = append(pkg.Symbols, i.inspectTypes(file)...)
		pkg.Symbols = append(pkg.Symbols, i.inspectFunctions(file)...)
	}
	if pkg.Name == "" {
		return nil, fmt.Errorf("no Go files found in package: %s", packagePath)
	}
	return pkg, nil
}

// inspectTypes extracts package level type declarations
func (i *Inspector) inspectTypes(file *File) []*info.Symbol {
	var symbols []*info.Symbol
	for _, decl := range file.file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok || (!i.config.IncludeUnexported && !typeSpec.Name.IsExported()) {
				continue
			}
			symbols = append(symbols, &info.Symbol{Name: typeSpec.Name.Name, Kind: info.SymbolType, Value: exprToString(typeSpec.Type)})
		}
	}
	return symbols
}

// inspectFunctions extracts package level functions, methods are reached through their types
func (i *Inspector) inspectFunctions(file *File) []*info.Symbol {
	var symbols []*info.Symbol
	for _, decl := range file.file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Recv != nil || funcDecl.Name.Name == "init" {
			continue
		}
		if !i.config.IncludeUnexported && !funcDecl.Name.IsExported() {
			continue
		}
		signature := strings.TrimPrefix(formatFuncType(funcDecl.Name.Name, funcDecl.Type), "func ")
		symbols = append(symbols, &info.Symbol{Name: funcDecl.Name.Name, Kind: info.SymbolFunc, Value: signature})
	}
	return symbols
}
