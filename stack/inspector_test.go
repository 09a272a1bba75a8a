package stack_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/calltrace/inspector/info"
	"github.com/viant/calltrace/stack"
)

type recorder struct {
	lines []string
	fail  error
}

func (r *recorder) Emit(line string) error {
	if r.fail != nil {
		return r.fail
	}
	r.lines = append(r.lines, line)
	return nil
}

func (r *recorder) EmitStructured(value interface{}) error {
	return r.Emit(fmt.Sprintf("%v", value))
}

// indexWalker returns frames by absolute depth
type indexWalker struct {
	frames []*stack.Frame
}

func (w *indexWalker) FrameCount() int { return len(w.frames) }

func (w *indexWalker) FrameAt(depth int) (*stack.Frame, error) {
	if depth < 0 || depth >= len(w.frames) {
		return nil, stack.ErrFrameOutOfRange
	}
	return w.frames[depth], nil
}

type symbols struct{}

func (s symbols) Package(ctx context.Context, dir string) (*info.Package, error) {
	if dir != "/src/app" {
		return nil, errors.New("unknown package")
	}
	return &info.Package{ImportPath: "example.com/app", Symbols: []*info.Symbol{{Name: "Version", Kind: info.SymbolConst, Value: `"1.0"`}}}, nil
}

func (s symbols) Builtins() map[string]string {
	return map[string]string{"len": "builtin func"}
}

func newFrames() []*stack.Frame {
	var frames []*stack.Frame
	for i := 0; i < 5; i++ {
		frames = append(frames, &stack.Frame{
			Function:  fmt.Sprintf("example.com/app.fn%d", i),
			Name:      fmt.Sprintf("fn%d", i),
			File:      "/src/app/main.go",
			Line:      10 + i,
			ArgCount:  i,
			Locals:    map[string]string{"x": "1"},
			Constants: []string{"1"},
		})
	}
	return frames
}

func TestInspector_RenderFrame(t *testing.T) {
	testCases := []struct {
		description string
		verbosity   int
		expect      []string
	}{
		{
			description: "tier 0",
			verbosity:   0,
			expect:      []string{">>Function fn1"},
		},
		{
			description: "tier 1",
			verbosity:   1,
			expect:      []string{">>Function fn1", ">>File '/src/app/main.go', line 11, in fn1, argcount 1"},
		},
		{
			description: "tier 2",
			verbosity:   2,
			expect: []string{">>Function fn1", ">>File '/src/app/main.go', line 11, in fn1, argcount 1",
				">>>Locals in the function are:", "map[x:1]"},
		},
		{
			description: "tier 3",
			verbosity:   3,
			expect: []string{">>Function fn1", ">>File '/src/app/main.go', line 11, in fn1, argcount 1",
				">>>Locals in the function are:", "map[x:1]", ">>>Constants set are:", "[1]"},
		},
	}

	for _, testCase := range testCases {
		printer := &recorder{}
		verbosity := testCase.verbosity
		inspector := stack.New(&indexWalker{frames: newFrames()}, printer, func() int { return verbosity }, nil)
		// depth 0 resolves to FrameAt(1)
		require.NoError(t, inspector.RenderFrame(0), testCase.description)
		assert.Equal(t, testCase.expect, printer.lines, testCase.description)
	}
}

func TestInspector_TiersAreCumulative(t *testing.T) {
	var previous []string
	for verbosity := 0; verbosity <= 3; verbosity++ {
		printer := &recorder{}
		level := verbosity
		inspector := stack.New(&indexWalker{frames: newFrames()}, printer, func() int { return level }, nil)
		require.NoError(t, inspector.RenderFullStack())
		for _, line := range previous {
			assert.Contains(t, printer.lines, line, "verbosity %d", verbosity)
		}
		assert.Greater(t, len(printer.lines), len(previous))
		previous = printer.lines
	}
}

func TestInspector_RenderFullStack(t *testing.T) {
	printer := &recorder{}
	inspector := stack.New(&indexWalker{frames: newFrames()}, printer, func() int { return 0 }, nil)
	require.NoError(t, inspector.RenderFullStack())
	assert.Equal(t, []string{">>Function fn3", ">>Function fn4"}, printer.lines)

	printer = &recorder{}
	inspector = stack.New(&indexWalker{frames: newFrames()}, printer, func() int { return 0 }, nil)
	require.NoError(t, inspector.RenderStackFrom(0))
	assert.Equal(t, []string{">>Function fn2", ">>Function fn3", ">>Function fn4"}, printer.lines)

	printer = &recorder{fail: errors.New("closed")}
	inspector = stack.New(&indexWalker{frames: newFrames()}, printer, func() int { return 0 }, nil)
	assert.EqualError(t, inspector.RenderFullStack(), "closed")
}

func TestInspector_Fallback(t *testing.T) {
	printer := &recorder{}
	walker := stack.NewFallback(func() uint64 { return 7 })
	inspector := stack.New(walker, printer, func() int { return 3 }, nil)
	require.NoError(t, inspector.RenderFullStack())
	assert.Equal(t, []string{">>Number of functions already called 7"}, printer.lines)

	_, err := walker.FrameAt(0)
	assert.True(t, errors.Is(err, stack.ErrFrameOutOfRange))
	assert.Equal(t, 0, walker.FrameCount())

	printer.lines = nil
	assert.True(t, errors.Is(inspector.RenderFrame(0), stack.ErrFrameOutOfRange))
	assert.Empty(t, printer.lines)
}

func TestInspector_RenderGlobals(t *testing.T) {
	expect := []string{">>>Globals seen are:", `map[example.com/app.Version:const "1.0"]`}
	for depth := 0; depth < 5; depth++ {
		printer := &recorder{}
		inspector := stack.New(&indexWalker{frames: newFrames()}, printer, func() int { return 0 }, symbols{})
		require.NoError(t, inspector.RenderGlobals(depth))
		assert.Equal(t, expect, printer.lines, "depth %d", depth)
	}

	printer := &recorder{}
	inspector := stack.New(stack.NewFallback(nil), printer, func() int { return 0 }, symbols{})
	require.NoError(t, inspector.RenderGlobals(0))
	assert.Equal(t, []string{">>>Globals seen are:", "map[]"}, printer.lines)
}

func TestInspector_RenderBuiltins(t *testing.T) {
	printer := &recorder{}
	inspector := stack.New(&indexWalker{}, printer, func() int { return 0 }, symbols{})
	require.NoError(t, inspector.RenderBuiltins())
	assert.Equal(t, []string{">>>Builtins seen are:", "map[len:builtin func]"}, printer.lines)

	printer = &recorder{}
	inspector = stack.New(&indexWalker{}, printer, func() int { return 0 }, nil)
	require.NoError(t, inspector.RenderBuiltins())
	assert.Equal(t, []string{">>>Builtins seen are:", "map[]"}, printer.lines)
}

func TestInspector_RenderFullStackRuntime(t *testing.T) {
	printer := &recorder{}
	inspector := stack.New(stack.NewRuntimeWalker(nil), printer, func() int { return 0 }, nil)
	require.NoError(t, inspector.RenderFullStack())
	require.NotEmpty(t, printer.lines)
	assert.Equal(t, ">>Function TestInspector_RenderFullStackRuntime", printer.lines[0])
	assert.True(t, strings.HasSuffix(printer.lines[len(printer.lines)-1], "goexit"))
}
