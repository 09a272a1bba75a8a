package info

// Location represents a line range in a source file
type Location struct {
	Start int
	End   int
}

// Contains returns true if line falls within the range
func (l *Location) Contains(line int) bool {
	return l != nil && line >= l.Start && line <= l.End
}

// Function represents the source view of a function enclosing a frame
type Function struct {
	Name       string
	Receiver   *Parameter
	Parameters []Parameter
	Locals     []*Variable // receiver and parameters first, then body locals declared up to the inspected line
	Constants  []*Constant
	Location   *Location
}

// ArgCount returns the number of declared arguments, the receiver included
func (f *Function) ArgCount() int {
	count := len(f.Parameters)
	if f.Receiver != nil {
		count++
	}
	return count
}

// LocalMap returns local bindings by name, later declarations shadow earlier ones
func (f *Function) LocalMap() map[string]string {
	result := make(map[string]string, len(f.Locals))
	for _, local := range f.Locals {
		if local.Name == "" || local.Name == "_" {
			continue
		}
		result[local.Name] = local.Binding()
	}
	return result
}

// ConstantValues returns the constant pool in order of appearance
func (f *Function) ConstantValues() []string {
	result := make([]string, 0, len(f.Constants))
	for _, constant := range f.Constants {
		result = append(result, constant.String())
	}
	return result
}

// Source represents a parsed source file
type Source interface {
	// Function returns the innermost function enclosing line
	Function(line int) (*Function, error)
}
