package calltrace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/viant/calltrace/config"
	"github.com/viant/calltrace/inspector"
	"github.com/viant/calltrace/stack"
	"github.com/viant/calltrace/writer"
)

// Tracer owns the call counters, the configuration and the output sinks shared by wrapped functions
type Tracer struct {
	config    *config.Config
	console   io.Writer
	input     *bufio.Reader
	inputMux  sync.Mutex
	walker    stack.Walker
	locator   stack.Locator
	service   *inspector.Service
	writer    *writer.Writer
	inspector *stack.Inspector

	recursion atomic.Int64
	sequence  atomic.Uint64
}

// New creates a Tracer
func New(options ...Option) (*Tracer, error) {
	t := &Tracer{console: os.Stdout}
	for _, opt := range options {
		opt(t)
	}
	if t.config == nil {
		t.config = config.New()
	}
	if t.input == nil {
		t.input = bufio.NewReader(os.Stdin)
	}
	service, err := inspector.New(
		inspector.WithParser(t.config.Parser),
		inspector.WithTypedGlobals(t.config.TypedGlobals),
	)
	if err != nil {
		return nil, err
	}
	t.service = service
	if t.walker == nil {
		t.walker = t.newWalker()
	}
	t.writer = writer.New(t.console, t.config.LogFile, t.config.Logging, writer.WithColor(t.config.Color))
	t.inspector = stack.New(t.walker, t.writer, t.config.Verbosity, service)
	return t, nil
}

func (t *Tracer) newWalker() stack.Walker {
	if !t.config.Introspection {
		return stack.NewFallback(t.Calls)
	}
	if t.locator == nil {
		t.locator = t.service
	}
	return stack.NewRuntimeWalker(t.locator)
}

// Config returns the trace configuration
func (t *Tracer) Config() *config.Config {
	return t.config
}

// Calls returns the number of traced calls since the tracer was created
func (t *Tracer) Calls() uint64 {
	return t.sequence.Load()
}

// Recursion returns the number of traced calls in progress
func (t *Tracer) Recursion() int64 {
	return t.recursion.Load()
}

// Close closes the log file
func (t *Tracer) Close() error {
	return t.writer.Close()
}

// Pause renders the caller frame and waits for a line on the input
func (t *Tracer) Pause() {
	t.pause(1)
}

// PrintCurStack renders every frame from the caller to the stack floor
func (t *Tracer) PrintCurStack() {
	t.printCurStack(1)
}

// PrintGlobals renders the package level symbols of the caller package
func (t *Tracer) PrintGlobals() {
	t.printGlobals(1)
}

// PrintBuiltins renders the predeclared identifiers
func (t *Tracer) PrintBuiltins() {
	t.check(t.inspector.RenderBuiltins())
}

// pause skips the given number of exported frames above itself
func (t *Tracer) pause(skip int) {
	t.debug(">>calltrace:pause called. Printing current Frame...")
	t.check(t.inspector.RenderFrame(2 + skip))
	t.debug(">>calltrace:pause closing...")
	t.check(t.writer.Prompt("Pausing in calltrace. Press any key to continue."))
	t.inputMux.Lock()
	_, _ = t.input.ReadString('\n')
	t.inputMux.Unlock()
}

func (t *Tracer) printCurStack(skip int) {
	t.debug(">>calltrace:printCurStack called. Unrolling stack...")
	t.check(t.inspector.RenderStackFrom(2 + skip))
	t.debug("calltrace:printCurStack finished")
}

func (t *Tracer) printGlobals(skip int) {
	t.check(t.inspector.RenderGlobals(2 + skip))
}

func (t *Tracer) debug(line string) {
	if t.config.Debug() {
		t.emit(line)
	}
}

func (t *Tracer) emitf(format string, args ...interface{}) {
	t.emit(fmt.Sprintf(format, args...))
}

func (t *Tracer) emit(line string) {
	t.check(t.writer.Emit(line))
}

func (t *Tracer) emitStructured(value interface{}) {
	t.check(t.writer.EmitStructured(value))
}

// check panics on sink failures, a trace that cannot be written is fatal
func (t *Tracer) check(err error) {
	if err == nil || errors.Is(err, stack.ErrFrameOutOfRange) {
		return
	}
	panic(fmt.Errorf("calltrace: %w", err))
}
