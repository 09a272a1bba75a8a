package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/calltrace/config"
)

func TestLoadConfig(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "trace.log")
	require.NoError(t, rootCmd.Flags().Parse([]string{"--verbosity", "2", "--debug", "--log=false", "--logfile", logFile, "--parser", config.ParserTreeSitter}))
	cfg, err := loadConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Verbosity())
	assert.True(t, cfg.Debug())
	assert.False(t, cfg.Logging())
	assert.Equal(t, logFile, cfg.LogFile)
	assert.Equal(t, config.ParserTreeSitter, cfg.Parser)
}
