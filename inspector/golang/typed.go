package golang

import (
	"fmt"
	"go/types"

	"github.com/viant/calltrace/inspector/info"
	"golang.org/x/tools/go/packages"
)

// InspectTypedPackage loads a package with the type checker and extracts its package scope
func (i *Inspector) InspectTypedPackage(packagePath string) (*info.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
		Dir:  packagePath,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", packagePath, err)
	}
	if len(pkgs) == 0 || pkgs[0].Types == nil {
		return nil, fmt.Errorf("no package found in %s", packagePath)
	}
	loaded := pkgs[0]
	if len(loaded.Errors) > 0 {
		return nil, fmt.Errorf("failed to load package %s: %v", packagePath, loaded.Errors[0])
	}

	pkg := &info.Package{Name: loaded.Name, ImportPath: loaded.PkgPath, Dir: packagePath}
	qualifier := types.RelativeTo(loaded.Types)
	scope := loaded.Types.Scope()
	for _, name := range scope.Names() {
		object := scope.Lookup(name)
		if !i.config.IncludeUnexported && !object.Exported() {
			continue
		}
		if symbol := typedSymbol(object, qualifier); symbol != nil {
			pkg.Symbols = append(pkg.Symbols, symbol)
		}
	}
	return pkg, nil
}

func typedSymbol(object types.Object, qualifier types.Qualifier) *info.Symbol {
	symbol := &info.Symbol{Name: object.Name()}
	switch actual := object.(type) {
	case *types.Const:
		symbol.Kind = info.SymbolConst
		symbol.Value = types.TypeString(actual.Type(), qualifier) + " = " + actual.Val().String()
	case *types.Var:
		symbol.Kind = info.SymbolVar
		symbol.Value = types.TypeString(actual.Type(), qualifier)
	case *types.TypeName:
		symbol.Kind = info.SymbolType
		symbol.Value = types.TypeString(actual.Type().Underlying(), qualifier)
	case *types.Func:
		symbol.Kind = info.SymbolFunc
		symbol.Value = object.Name() + types.TypeString(actual.Type(), qualifier)[len("func"):]
	default:
		return nil
	}
	return symbol
}
