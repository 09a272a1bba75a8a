package calltrace_test

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/calltrace"
	"github.com/viant/calltrace/config"
)

type fixture struct {
	tracer  *calltrace.Tracer
	console *bytes.Buffer
	logFile string
}

func (f *fixture) lines() []string {
	return strings.Split(strings.TrimRight(f.console.String(), "\n"), "\n")
}

func (f *fixture) logLines(t *testing.T) []string {
	file, err := os.Open(f.logFile)
	require.NoError(t, err)
	defer file.Close()
	var result []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	return result
}

func newFixture(t *testing.T, verbosity int, debug bool, options ...func(cfg *config.Config)) *fixture {
	cfg := config.New()
	cfg.LogFile = filepath.Join(t.TempDir(), config.DefaultLogFile)
	cfg.Color = false
	require.True(t, cfg.SetVerbosity(verbosity))
	require.True(t, cfg.SetDebug(debug))
	for _, option := range options {
		option(cfg)
	}
	console := &bytes.Buffer{}
	tracer, err := calltrace.New(
		calltrace.WithConfig(cfg),
		calltrace.WithConsole(console),
		calltrace.WithInput(strings.NewReader("\n")),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tracer.Close() })
	return &fixture{tracer: tracer, console: console, logFile: cfg.LogFile}
}

func TestTracer_Pause(t *testing.T) {
	f := newFixture(t, 1, true)
	f.tracer.Pause()
	lines := f.lines()
	require.Len(t, lines, 5)
	assert.Equal(t, ">>calltrace:pause called. Printing current Frame...", lines[0])
	assert.Equal(t, ">>Function TestTracer_Pause", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], ">>File '"), lines[2])
	assert.Contains(t, lines[2], "tracer_test.go', line ")
	assert.True(t, strings.HasSuffix(lines[2], "in TestTracer_Pause, argcount 1"), lines[2])
	assert.Equal(t, ">>calltrace:pause closing...", lines[3])
	assert.Equal(t, "Pausing in calltrace. Press any key to continue.", lines[4])

	// the prompt is console only
	assert.NotContains(t, f.logLines(t), "Pausing in calltrace. Press any key to continue.")

	// EOF releases the pause
	f.tracer.Pause()
}

func TestTracer_PrintCurStack(t *testing.T) {
	f := newFixture(t, 0, true)
	f.tracer.PrintCurStack()
	lines := f.lines()
	require.Greater(t, len(lines), 3)
	assert.Equal(t, ">>calltrace:printCurStack called. Unrolling stack...", lines[0])
	assert.Equal(t, ">>Function TestTracer_PrintCurStack", lines[1])
	assert.Equal(t, ">>Function tRunner", lines[2])
	assert.Equal(t, "calltrace:printCurStack finished", lines[len(lines)-1])
}

func TestTracer_PrintCurStackLocals(t *testing.T) {
	f := newFixture(t, 3, false)
	marker := "visible"
	_ = marker
	f.tracer.PrintCurStack()
	output := f.console.String()
	assert.Contains(t, output, ">>>Locals in the function are:")
	assert.Contains(t, output, `"marker"`)
	assert.Contains(t, output, ">>>Constants set are:")
	assert.Contains(t, output, `"\"visible\""`)
}

func TestTracer_Fallback(t *testing.T) {
	f := newFixture(t, 3, false, func(cfg *config.Config) { cfg.Introspection = false })
	traced := calltrace.DecorateWith(f.tracer, func() {})
	traced()
	traced()
	f.console.Reset()
	f.tracer.PrintCurStack()
	assert.Equal(t, []string{">>Number of functions already called 2"}, f.lines())
}

func TestTracer_PrintGlobals(t *testing.T) {
	f := newFixture(t, 0, false)
	f.tracer.PrintGlobals()
	lines := f.lines()
	assert.Equal(t, ">>>Globals seen are:", lines[0])
	output := f.console.String()
	assert.Contains(t, output, "github.com/viant/calltrace.ErrNotFunction")
	assert.Contains(t, output, "github.com/viant/calltrace.Sample")

	first := output
	f.console.Reset()
	func() {
		f.tracer.PrintGlobals()
	}()
	assert.Equal(t, first, f.console.String())
}

func TestTracer_PrintBuiltins(t *testing.T) {
	f := newFixture(t, 0, false)
	f.tracer.PrintBuiltins()
	lines := f.lines()
	assert.Equal(t, ">>>Builtins seen are:", lines[0])
	assert.Contains(t, f.console.String(), `"append"`)
	assert.Contains(t, f.console.String(), `"iota"`)
}

func TestTracer_LogDisabled(t *testing.T) {
	f := newFixture(t, 0, false)
	require.True(t, f.tracer.Config().SetLog(false))
	traced := calltrace.DecorateWith(f.tracer, func() int { return 1 })
	assert.Equal(t, 1, traced())
	assert.Contains(t, f.console.String(), ">>Ended call to ")
	_, err := os.Stat(f.logFile)
	assert.True(t, os.IsNotExist(err))
}

func TestTracer_LogFailureIsFatal(t *testing.T) {
	f := newFixture(t, 0, false, func(cfg *config.Config) {
		cfg.LogFile = filepath.Join(os.TempDir(), "calltrace-missing-dir", "nested", config.DefaultLogFile)
	})
	assert.Panics(t, func() {
		_, _ = f.tracer.Wrap(func() {})
	})
}
