package stack

import (
	"context"
	"errors"
	"runtime"

	"github.com/viant/calltrace/inspector/info"
)

// ErrFrameOutOfRange is returned when the requested depth is past the stack floor
var ErrFrameOutOfRange = errors.New("frame out of range")

const maxDepth = 512

// Walker provides access to the live call stack
type Walker interface {
	// FrameCount returns the number of frames above the caller
	FrameCount() int
	// FrameAt returns the frame at depth, depth 0 being the function calling FrameAt
	FrameAt(depth int) (*Frame, error)
}

// Locator finds the function enclosing a source line
type Locator interface {
	Function(ctx context.Context, filename string, line int) (*info.Function, error)
}

// RuntimeWalker walks the goroutine stack with runtime.Callers
type RuntimeWalker struct {
	locator Locator
}

// NewRuntimeWalker creates a walker, locator enriches frames with source details and can be nil
func NewRuntimeWalker(locator Locator) *RuntimeWalker {
	return &RuntimeWalker{locator: locator}
}

// FrameCount returns the number of frames above the caller
func (w *RuntimeWalker) FrameCount() int {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return 0
	}
	frames := runtime.CallersFrames(pcs[:n])
	count := 1
	for _, more := frames.Next(); more; _, more = frames.Next() {
		count++
	}
	return count
}

// FrameAt returns the frame at depth, depth 0 being the function calling FrameAt
func (w *RuntimeWalker) FrameAt(depth int) (*Frame, error) {
	if depth < 0 {
		return nil, ErrFrameOutOfRange
	}
	pcs := make([]uintptr, 1)
	if runtime.Callers(depth+2, pcs) == 0 {
		return nil, ErrFrameOutOfRange
	}
	frame, _ := runtime.CallersFrames(pcs).Next()
	return w.frame(frame), nil
}

func (w *RuntimeWalker) frame(runtimeFrame runtime.Frame) *Frame {
	frame := &Frame{
		Function: runtimeFrame.Function,
		Name:     ShortName(runtimeFrame.Function),
		File:     runtimeFrame.File,
		Line:     runtimeFrame.Line,
		Locals:   map[string]string{},
	}
	if w.locator == nil || frame.File == "" {
		return frame
	}
	fn, err := w.locator.Function(context.Background(), frame.File, frame.Line)
	if err != nil {
		return frame
	}
	frame.ArgCount = fn.ArgCount()
	frame.Locals = fn.LocalMap()
	frame.Constants = fn.ConstantValues()
	return frame
}

// Fallback is used when frame introspection is disabled, it only reports how many traced calls were made
type Fallback struct {
	calls func() uint64
}

// NewFallback creates a fallback walker reporting calls
func NewFallback(calls func() uint64) *Fallback {
	return &Fallback{calls: calls}
}

// FrameCount always returns 0
func (f *Fallback) FrameCount() int {
	return 0
}

// FrameAt always fails with ErrFrameOutOfRange
func (f *Fallback) FrameAt(int) (*Frame, error) {
	return nil, ErrFrameOutOfRange
}

// CallCount returns the number of calls made so far
func (f *Fallback) CallCount() uint64 {
	if f.calls == nil {
		return 0
	}
	return f.calls()
}
