package calltrace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/calltrace"
)

func TestDefaultAccessors(t *testing.T) {
	f := newFixture(t, 0, false)
	calltrace.SetDefault(f.tracer)
	assert.Same(t, f.tracer, calltrace.Default())

	testCases := []struct {
		description string
		set         func() bool
		expect      bool
		check       func() interface{}
		value       interface{}
	}{
		{description: "debug on", set: func() bool { return calltrace.SetDebug(true) }, expect: true, check: func() interface{} { return calltrace.GetDebug() }, value: true},
		{description: "debug string", set: func() bool { return calltrace.SetDebug("true") }, expect: false, check: func() interface{} { return calltrace.GetDebug() }, value: true},
		{description: "debug off", set: func() bool { return calltrace.SetDebug(false) }, expect: true, check: func() interface{} { return calltrace.GetDebug() }, value: false},
		{description: "verbosity 2", set: func() bool { return calltrace.SetVerbosity(2) }, expect: true, check: func() interface{} { return calltrace.GetVerbosity() }, value: 2},
		{description: "verbosity negative", set: func() bool { return calltrace.SetVerbosity(-1) }, expect: false, check: func() interface{} { return calltrace.GetVerbosity() }, value: 2},
		{description: "verbosity float", set: func() bool { return calltrace.SetVerbosity(1.5) }, expect: false, check: func() interface{} { return calltrace.GetVerbosity() }, value: 2},
		{description: "verbosity uint8", set: func() bool { return calltrace.SetVerbosity(uint8(0)) }, expect: true, check: func() interface{} { return calltrace.GetVerbosity() }, value: 0},
		{description: "log off", set: func() bool { return calltrace.SetLog(false) }, expect: true, check: func() interface{} { return calltrace.GetLog() }, value: false},
		{description: "log nil", set: func() bool { return calltrace.SetLog(nil) }, expect: false, check: func() interface{} { return calltrace.GetLog() }, value: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.set(), testCase.description)
		assert.Equal(t, testCase.value, testCase.check(), testCase.description)
	}
}

func TestDefaultFacade(t *testing.T) {
	f := newFixture(t, 0, false)
	calltrace.SetDefault(f.tracer)

	traced := calltrace.Decorate(add)
	assert.Equal(t, 3, traced(1, 2))
	assert.Contains(t, f.console.String(), ">>Ended call to add [Call#001]. Returned 3")

	f.console.Reset()
	calltrace.PrintCurStack()
	assert.Equal(t, ">>Function TestDefaultFacade", f.lines()[0])

	f.console.Reset()
	calltrace.Pause()
	assert.Equal(t, ">>Function TestDefaultFacade", f.lines()[0])

	f.console.Reset()
	calltrace.PrintGlobals()
	assert.Contains(t, f.console.String(), "github.com/viant/calltrace.Default")

	f.console.Reset()
	calltrace.PrintBuiltins()
	assert.Equal(t, ">>>Builtins seen are:", f.lines()[0])
}

func TestSample(t *testing.T) {
	f := newFixture(t, 0, true)
	assert.Equal(t, 0, calltrace.Sample(f.tracer))

	lines := f.lines()
	assert.Contains(t, lines, ">>Starting call to helloArgs [Call#001]")
	assert.Contains(t, lines, "In helloArgs")
	assert.Contains(t, lines, ">>calltrace:printCurStack called. Unrolling stack...")
	assert.Contains(t, lines, ">>Function Sample.func1")
	assert.Contains(t, lines, ">>Function TestSample")
	assert.Contains(t, lines, "Closing helloArgs")
	assert.Contains(t, lines, ">>Ended call to helloArgs [Call#001]. Returned 0")
	assert.Equal(t, "Returns from the test function are correct", lines[len(lines)-1])
}
