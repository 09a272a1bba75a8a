package calltrace

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/viant/calltrace/stack"
	"github.com/viant/calltrace/writer"
)

// ErrNotFunction is returned when the wrapped target is not a function
var ErrNotFunction = errors.New("calltrace: target is not a function")

// Kwargs carries keyword arguments, Kwargs and ...Kwargs parameters are merged into the keyword bundle
type Kwargs map[string]interface{}

var kwargsType = reflect.TypeOf(Kwargs{})

const rule = ">>--------------------------------------------------"

// Wrapped represents a traced function
type Wrapped struct {
	tracer *Tracer
	fn     reflect.Value
	name   string
	layout writer.Layout
	count  atomic.Int64
}

// Wrap creates a traced function, the first Wrap of a tracer fixes the log layout from the verbosity at that point
func (t *Tracer) Wrap(fn interface{}, options ...WrapOption) (*Wrapped, error) {
	value := reflect.ValueOf(fn)
	if value.Kind() != reflect.Func || value.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotFunction, fn)
	}
	w := &Wrapped{tracer: t, fn: value}
	if function := runtime.FuncForPC(value.Pointer()); function != nil {
		w.name = stack.ShortName(function.Name())
	}
	for _, opt := range options {
		opt(w)
	}
	w.layout = t.writer.FreezeLayout(writer.LayoutFor(t.config.Verbosity()))
	t.emit(">>Initializing call tracer")
	return w, nil
}

// Decorate returns fn traced by the default tracer
func Decorate[F any](fn F, options ...WrapOption) F {
	return DecorateWith(Default(), fn, options...)
}

// DecorateWith returns fn traced by t, it panics when fn is not a function
func DecorateWith[F any](t *Tracer, fn F, options ...WrapOption) F {
	w, err := t.Wrap(fn, options...)
	if err != nil {
		panic(err)
	}
	return reflect.MakeFunc(w.fn.Type(), w.invoke).Interface().(F)
}

// Name returns the reported function name
func (w *Wrapped) Name() string {
	return w.name
}

// Layout returns the log layout fixed by the first Wrap of the tracer
func (w *Wrapped) Layout() writer.Layout {
	return w.layout
}

// Calls returns how many times PrintCurStack and Pause were invoked on this wrapper
func (w *Wrapped) Calls() int64 {
	return w.count.Load()
}

// PrintCurStack renders every frame from the caller to the stack floor
func (w *Wrapped) PrintCurStack() {
	w.countCall()
	w.tracer.printCurStack(1)
}

// Pause renders the caller frame and waits for a line on the input
func (w *Wrapped) Pause() {
	w.countCall()
	w.tracer.pause(1)
}

func (w *Wrapped) countCall() {
	count := w.count.Add(1)
	w.tracer.debug(fmt.Sprintf(">>calltrace:Call count to decorator %d", count))
}

// Call invokes the traced function with dynamic arguments
func (w *Wrapped) Call(args ...interface{}) []interface{} {
	in, err := w.arguments(args)
	if err != nil {
		panic(err)
	}
	results := w.invoke(in)
	out := make([]interface{}, len(results))
	for i, result := range results {
		out[i] = result.Interface()
	}
	return out
}

// arguments converts args to call values, the variadic tail is packed into a slice
func (w *Wrapped) arguments(args []interface{}) ([]reflect.Value, error) {
	fnType := w.fn.Type()
	fixed := fnType.NumIn()
	if fnType.IsVariadic() {
		fixed--
	}
	if len(args) < fixed || (!fnType.IsVariadic() && len(args) > fixed) {
		return nil, fmt.Errorf("calltrace: %s expects %d arguments, got %d", w.name, fnType.NumIn(), len(args))
	}
	in := make([]reflect.Value, 0, fnType.NumIn())
	for i := 0; i < fixed; i++ {
		value, err := argument(args[i], fnType.In(i))
		if err != nil {
			return nil, fmt.Errorf("calltrace: %s argument %d: %w", w.name, i, err)
		}
		in = append(in, value)
	}
	if !fnType.IsVariadic() {
		return in, nil
	}
	sliceType := fnType.In(fixed)
	tail := reflect.MakeSlice(sliceType, 0, len(args)-fixed)
	for i := fixed; i < len(args); i++ {
		value, err := argument(args[i], sliceType.Elem())
		if err != nil {
			return nil, fmt.Errorf("calltrace: %s argument %d: %w", w.name, i, err)
		}
		tail = reflect.Append(tail, value)
	}
	return append(in, tail), nil
}

func argument(arg interface{}, target reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(target), nil
	}
	value := reflect.ValueOf(arg)
	switch {
	case value.Type().AssignableTo(target):
		return value, nil
	case value.Type().ConvertibleTo(target):
		return value.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %v", arg, target)
}

// invoke traces one call, args follow reflect.MakeFunc conventions
func (w *Wrapped) invoke(args []reflect.Value) []reflect.Value {
	t := w.tracer
	level := t.recursion.Add(1)
	seq := t.sequence.Add(1)
	debug, verbosity := t.config.Debug(), t.config.Verbosity()
	defer func() {
		level := t.recursion.Add(-1)
		if debug {
			t.emitf(">>calltrace:recursionLevel count is %d", level)
		}
	}()

	if debug {
		t.emitf(">>calltrace:recursionLevel count is %d", level)
	}
	if verbosity >= 1 {
		positional, keywords := w.bundles(args)
		t.emitf(">>We are calling %s", w.name)
		t.emit(">>For args we have:")
		t.emitStructured(positional)
		t.emit(">>For kwargs we have:")
		t.emitStructured(keywords)
	}
	t.emitf(">>Starting call to %s [Call#%03d]", w.name, seq)
	if verbosity >= 1 {
		t.emit(rule)
	}

	var results []reflect.Value
	if w.fn.Type().IsVariadic() {
		results = w.fn.CallSlice(args)
	} else {
		results = w.fn.Call(args)
	}

	if verbosity >= 1 {
		t.emit(rule)
	}
	t.emitf(">>Ended call to %s [Call#%03d]. Returned %s", w.name, seq, formatResults(results))
	return results
}

// bundles splits args into positional values and merged keyword arguments
func (w *Wrapped) bundles(args []reflect.Value) ([]interface{}, Kwargs) {
	positional := []interface{}{}
	keywords := Kwargs{}
	variadic := w.fn.Type().IsVariadic()
	for i, arg := range args {
		switch {
		case arg.Type() == kwargsType:
			for key, value := range arg.Interface().(Kwargs) {
				keywords[key] = value
			}
		case variadic && i == len(args)-1 && arg.Type().Elem() == kwargsType:
			for j := 0; j < arg.Len(); j++ {
				for key, value := range arg.Index(j).Interface().(Kwargs) {
					keywords[key] = value
				}
			}
		case variadic && i == len(args)-1:
			for j := 0; j < arg.Len(); j++ {
				positional = append(positional, arg.Index(j).Interface())
			}
		default:
			positional = append(positional, arg.Interface())
		}
	}
	return positional, keywords
}

func formatResults(results []reflect.Value) string {
	switch len(results) {
	case 0:
		return "<nil>"
	case 1:
		return fmt.Sprintf("%v", results[0].Interface())
	}
	values := make([]string, len(results))
	for i, result := range results {
		values[i] = fmt.Sprintf("%v", result.Interface())
	}
	return "(" + strings.Join(values, ", ") + ")"
}
