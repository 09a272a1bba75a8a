package golang

import "go/types"

// Builtins returns the predeclared identifiers of the universe scope
func Builtins() map[string]string {
	scope := types.Universe
	result := make(map[string]string, len(scope.Names()))
	for _, name := range scope.Names() {
		switch object := scope.Lookup(name).(type) {
		case *types.Builtin:
			result[name] = "builtin func"
		case *types.TypeName:
			result[name] = "type"
		case *types.Const:
			result[name] = "const " + object.Val().String()
		case *types.Nil:
			result[name] = "nil"
		default:
			result[name] = object.String()
		}
	}
	return result
}
