// Package calltrace traces function calls: it logs entry and exit with arguments and results
// and prints the active call stack with tunable verbosity.
//
// Output goes to the console and, when logging is enabled, to an append-only log file.
// Package level functions operate on the default tracer.
package calltrace

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/viant/calltrace/config"
)

var (
	defaultTracer atomic.Pointer[Tracer]
	defaultOnce   sync.Once
)

// Default returns the default tracer, configured from the environment on first use
func Default() *Tracer {
	defaultOnce.Do(func() {
		if defaultTracer.Load() != nil {
			return
		}
		cfg, err := config.Load(context.Background(), "")
		if err != nil {
			logrus.WithError(err).Warn("calltrace: ignoring environment settings")
			cfg = config.New()
		}
		tracer, err := New(WithConfig(cfg))
		if err != nil {
			panic(err)
		}
		defaultTracer.CompareAndSwap(nil, tracer)
	})
	return defaultTracer.Load()
}

// SetDefault replaces the default tracer
func SetDefault(t *Tracer) {
	defaultTracer.Store(t)
}

// SetDebug sets the debug flag, it returns false for non boolean values
func SetDebug(value interface{}) bool {
	return Default().config.SetDebug(value)
}

// GetDebug returns the debug flag
func GetDebug() bool {
	return Default().config.Debug()
}

// SetVerbosity sets the verbosity tier, it returns false unless value is a non-negative integer
func SetVerbosity(value interface{}) bool {
	return Default().config.SetVerbosity(value)
}

// GetVerbosity returns the verbosity tier
func GetVerbosity() int {
	return Default().config.Verbosity()
}

// SetLog enables or disables the log file sink, it returns false for non boolean values
func SetLog(value interface{}) bool {
	return Default().config.SetLog(value)
}

// GetLog returns whether the log file sink is enabled
func GetLog() bool {
	return Default().config.Logging()
}

// Pause renders the caller frame and waits for a line on stdin
func Pause() {
	Default().pause(1)
}

// PrintCurStack renders every frame from the caller to the stack floor
func PrintCurStack() {
	Default().printCurStack(1)
}

// PrintGlobals renders the package level symbols of the caller package
func PrintGlobals() {
	Default().printGlobals(1)
}

// PrintBuiltins renders the predeclared identifiers
func PrintBuiltins() {
	Default().PrintBuiltins()
}
