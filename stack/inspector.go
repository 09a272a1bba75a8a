package stack

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/viant/calltrace/inspector/info"
)

// Printer receives rendered lines
type Printer interface {
	Emit(line string) error
	EmitStructured(value interface{}) error
}

// Symbols provides package level and predeclared symbols
type Symbols interface {
	Package(ctx context.Context, dir string) (*info.Package, error)
	Builtins() map[string]string
}

type callCounter interface {
	CallCount() uint64
}

// Inspector renders call frames through a printer
type Inspector struct {
	walker    Walker
	printer   Printer
	verbosity func() int
	symbols   Symbols
}

// New creates an Inspector, symbols can be nil
func New(walker Walker, printer Printer, verbosity func() int, symbols Symbols) *Inspector {
	return &Inspector{walker: walker, printer: printer, verbosity: verbosity, symbols: symbols}
}

// RenderFrame renders the frame at depth, depth 0 being RenderFrame itself
func (i *Inspector) RenderFrame(depth int) error {
	return i.renderFrame(depth + 1)
}

// RenderFullStack renders every frame from the caller of RenderFullStack to the stack floor
func (i *Inspector) RenderFullStack() error {
	return i.renderStack(2)
}

// RenderStackFrom renders every frame from depth to the stack floor, depth 0 being RenderStackFrom itself
func (i *Inspector) RenderStackFrom(depth int) error {
	return i.renderStack(depth + 1)
}

func (i *Inspector) renderStack(depth int) error {
	if counter, ok := i.walker.(callCounter); ok {
		return i.printer.Emit(fmt.Sprintf(">>Number of functions already called %d", counter.CallCount()))
	}
	for ; ; depth++ {
		err := i.renderFrame(depth + 1)
		if errors.Is(err, ErrFrameOutOfRange) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// renderFrame renders the frame at depth, depth 0 being renderFrame itself
func (i *Inspector) renderFrame(depth int) error {
	frame, err := i.walker.FrameAt(depth)
	if err != nil {
		return err
	}
	return i.render(frame)
}

func (i *Inspector) render(frame *Frame) error {
	verbosity := i.verbosity()
	if err := i.printer.Emit(">>Function " + frame.Name); err != nil {
		return err
	}
	if verbosity < 1 {
		return nil
	}
	if err := i.printer.Emit(fmt.Sprintf(">>File '%s', line %d, in %s, argcount %d", frame.File, frame.Line, frame.Name, frame.ArgCount)); err != nil {
		return err
	}
	if verbosity < 2 {
		return nil
	}
	if err := i.emitSection(">>>Locals in the function are:", frame.Locals); err != nil {
		return err
	}
	if verbosity < 3 {
		return nil
	}
	constants := frame.Constants
	if constants == nil {
		constants = []string{}
	}
	return i.emitSection(">>>Constants set are:", constants)
}

// RenderGlobals renders the package level symbols seen from the frame at depth, depth 0 being RenderGlobals itself
func (i *Inspector) RenderGlobals(depth int) error {
	globals := map[string]string{}
	if frame, err := i.walker.FrameAt(depth); err == nil && i.symbols != nil && frame.File != "" {
		if pkg, err := i.symbols.Package(context.Background(), filepath.Dir(frame.File)); err == nil {
			globals = pkg.SymbolMap()
		}
	}
	return i.emitSection(">>>Globals seen are:", globals)
}

// RenderBuiltins renders the predeclared identifiers
func (i *Inspector) RenderBuiltins() error {
	builtins := map[string]string{}
	if i.symbols != nil {
		builtins = i.symbols.Builtins()
	}
	return i.emitSection(">>>Builtins seen are:", builtins)
}

func (i *Inspector) emitSection(header string, value interface{}) error {
	if err := i.printer.Emit(header); err != nil {
		return err
	}
	return i.printer.EmitStructured(value)
}
