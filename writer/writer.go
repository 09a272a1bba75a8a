// Package writer duplicates trace lines to an append-only log file and the console.
package writer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Writer routes every line to the log sink (when enabled) and then to the console
type Writer struct {
	console  io.Writer
	location string
	enabled  func() bool
	colorize bool
	paint    *color.Color

	mux       sync.Mutex
	once      sync.Once
	file      *os.File
	sink      *sink
	logger    *logrus.Logger
	formatter *Formatter
	frozen    bool
	openErr   error
}

// Option configures a Writer
type Option func(*Writer)

// WithColor colours trace lines when the console is a terminal
func WithColor(enabled bool) Option {
	return func(w *Writer) {
		w.colorize = enabled && isTerminal(w.console)
	}
}

// New creates a writer for console and the log file at location; enabled gates the log sink
func New(console io.Writer, location string, enabled func() bool, options ...Option) *Writer {
	if enabled == nil {
		enabled = func() bool { return true }
	}
	w := &Writer{
		console:   console,
		location:  location,
		enabled:   enabled,
		paint:     color.New(color.FgCyan),
		formatter: &Formatter{Layout: LayoutBare},
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// SetLayout changes the log layout for subsequent lines
func (w *Writer) SetLayout(layout Layout) {
	w.mux.Lock()
	w.formatter.Layout = layout
	w.mux.Unlock()
}

// FreezeLayout sets the log layout on its first call only and returns the layout in effect
func (w *Writer) FreezeLayout(layout Layout) Layout {
	w.mux.Lock()
	defer w.mux.Unlock()
	if !w.frozen {
		w.formatter.Layout = layout
		w.frozen = true
	}
	return w.formatter.Layout
}

// Layout returns the current log layout
func (w *Writer) Layout() Layout {
	w.mux.Lock()
	defer w.mux.Unlock()
	return w.formatter.Layout
}

// Emit writes line to the log sink, if enabled, and then to the console
func (w *Writer) Emit(line string) error {
	w.mux.Lock()
	defer w.mux.Unlock()
	if w.enabled() {
		if err := w.log(line); err != nil {
			return err
		}
	}
	return w.print(line)
}

// EmitStructured pretty prints value to both sinks
func (w *Writer) EmitStructured(value interface{}) error {
	return w.Emit(Pretty(value))
}

// Prompt writes text to the console only, without a trailing newline
func (w *Writer) Prompt(text string) error {
	w.mux.Lock()
	defer w.mux.Unlock()
	_, err := io.WriteString(w.console, text)
	return err
}

// Close closes the log file if it was opened
func (w *Writer) Close() error {
	w.mux.Lock()
	defer w.mux.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	w.openErr = fmt.Errorf("log %s is closed", w.location)
	return err
}

func (w *Writer) log(line string) error {
	w.once.Do(w.open)
	if w.openErr != nil {
		return w.openErr
	}
	w.logger.Info(line)
	return w.sink.reset()
}

func (w *Writer) open() {
	file, err := os.OpenFile(w.location, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		w.openErr = fmt.Errorf("failed to open log %s: %w", w.location, err)
		return
	}
	w.file = file
	w.sink = &sink{writer: file}
	w.logger = logrus.New()
	w.logger.SetOutput(w.sink)
	w.logger.SetLevel(logrus.DebugLevel)
	w.logger.SetFormatter(w.formatter)
}

func (w *Writer) print(line string) error {
	if w.colorize && strings.HasPrefix(line, ">>") {
		_, err := w.paint.Fprintln(w.console, line)
		return err
	}
	_, err := fmt.Fprintln(w.console, line)
	return err
}

// sink keeps the last write error, logrus only reports it on stderr
type sink struct {
	writer io.Writer
	err    error
}

func (s *sink) Write(data []byte) (int, error) {
	n, err := s.writer.Write(data)
	if err != nil && s.err == nil {
		s.err = err
	}
	return n, err
}

func (s *sink) reset() error {
	err := s.err
	s.err = nil
	if err != nil {
		return fmt.Errorf("failed to write log: %w", err)
	}
	return nil
}

func isTerminal(console io.Writer) bool {
	file, ok := console.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
