// Package config holds the trace settings shared by every decorated function.
//
// Debug, verbosity and logging are meant to be flipped while a debug session is
// running, so they live behind accessors that validate their input and report
// rejection with a false result instead of an error. The remaining fields are
// read once, when a tracer is built.
package config

import (
	"reflect"
	"sync"

	"fortio.org/safecast"
	"github.com/viant/calltrace/inspector"
)

const (
	// DefaultLogFile is the append-only trace log created in the working directory.
	DefaultLogFile = "logfile"
	// ParserAST selects the go/parser source inspector.
	ParserAST = inspector.ParserAST
	// ParserTreeSitter selects the tree-sitter source inspector.
	ParserTreeSitter = inspector.ParserTreeSitter
	// MaxVerbosity is the most detailed rendering tier, higher values render the same.
	MaxVerbosity = 3
)

// Config holds trace settings
type Config struct {
	mux       sync.RWMutex
	debug     bool
	verbosity int
	logging   bool

	LogFile       string // log sink location
	Color         bool   // colour console lines when attached to a terminal
	Parser        string // source inspector backend (ParserAST or ParserTreeSitter)
	TypedGlobals  bool   // load globals with type information (go/packages)
	Introspection bool   // when false, stack rendering reports call counts only
}

// New returns a config with defaults: debug off, verbosity 0, logging on
func New() *Config {
	return &Config{
		logging:       true,
		LogFile:       DefaultLogFile,
		Color:         true,
		Parser:        ParserAST,
		Introspection: true,
	}
}

// SetDebug sets the debug flag; value must be a bool
func (c *Config) SetDebug(value interface{}) bool {
	flag, ok := value.(bool)
	if !ok {
		return false
	}
	c.mux.Lock()
	c.debug = flag
	c.mux.Unlock()
	return true
}

// Debug returns the debug flag
func (c *Config) Debug() bool {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.debug
}

// SetVerbosity sets the verbosity tier; value must be a non-negative integer of any integer kind
func (c *Config) SetVerbosity(value interface{}) bool {
	level, ok := toLevel(value)
	if !ok {
		return false
	}
	c.mux.Lock()
	c.verbosity = level
	c.mux.Unlock()
	return true
}

// Verbosity returns the verbosity tier
func (c *Config) Verbosity() int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.verbosity
}

// SetLog enables or disables the log sink; value must be a bool
func (c *Config) SetLog(value interface{}) bool {
	flag, ok := value.(bool)
	if !ok {
		return false
	}
	c.mux.Lock()
	c.logging = flag
	c.mux.Unlock()
	return true
}

// Logging returns whether the log sink is enabled
func (c *Config) Logging() bool {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.logging
}

func toLevel(value interface{}) (int, bool) {
	if value == nil {
		return 0, false
	}
	var level int
	var err error
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		level, err = safecast.Conv[int](rValue.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		level, err = safecast.Conv[int](rValue.Uint())
	default:
		return 0, false
	}
	if err != nil || level < 0 {
		return 0, false
	}
	return level, true
}
