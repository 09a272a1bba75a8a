package calltrace

import (
	"bufio"
	"io"

	"github.com/viant/calltrace/config"
	"github.com/viant/calltrace/stack"
)

// Option represents a Tracer option
type Option func(t *Tracer)

// WithConfig sets the trace configuration
func WithConfig(cfg *config.Config) Option {
	return func(t *Tracer) {
		t.config = cfg
	}
}

// WithConsole sets the console sink, stdout by default
func WithConsole(console io.Writer) Option {
	return func(t *Tracer) {
		t.console = console
	}
}

// WithInput sets the reader Pause waits on, stdin by default
func WithInput(input io.Reader) Option {
	return func(t *Tracer) {
		t.input = bufio.NewReader(input)
	}
}

// WithWalker replaces the stack walker
func WithWalker(walker stack.Walker) Option {
	return func(t *Tracer) {
		t.walker = walker
	}
}

// WithLocator replaces the source locator used to enrich runtime frames
func WithLocator(locator stack.Locator) Option {
	return func(t *Tracer) {
		t.locator = locator
	}
}

// WrapOption represents a Wrapped option
type WrapOption func(w *Wrapped)

// WithName overrides the name reported for the wrapped function
func WithName(name string) WrapOption {
	return func(w *Wrapped) {
		w.name = name
	}
}
