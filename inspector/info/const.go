package info

// Constant represents a named constant or a literal used by a function body
type Constant struct {
	Name  string // empty for literals
	Value string // source text of the value
	Type  string // declared type or literal kind
	Line  int
}

// String returns "Name = Value" for named constants and the value for literals
func (c *Constant) String() string {
	if c.Name == "" {
		return c.Value
	}
	return c.Name + " = " + c.Value
}
