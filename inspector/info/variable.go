package info

// VariableKind tells parameters apart from body locals
type VariableKind string

const (
	KindReceiver  VariableKind = "receiver"
	KindParameter VariableKind = "param"
	KindLocal     VariableKind = "local"
)

// Variable represents a binding visible in a function frame
type Variable struct {
	Name  string
	Kind  VariableKind
	Type  string // declared type, if any
	Value string // source text of the initializer, if any
	Line  int
}

// Binding returns a short description of how the variable got its value
func (v *Variable) Binding() string {
	switch {
	case v.Kind != KindLocal:
		return v.Type + " (" + string(v.Kind) + ")"
	case v.Value != "" && v.Type != "":
		return v.Type + " = " + v.Value
	case v.Value != "":
		return v.Value
	}
	return v.Type
}

// Parameter represents a function parameter
type Parameter struct {
	Name string
	Type string
}
