package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file and default settings
const (
	EnvDebug     = "CALLTRACE_DEBUG"
	EnvVerbosity = "CALLTRACE_VERBOSITY"
	EnvLog       = "CALLTRACE_LOG"
	EnvLogFile   = "CALLTRACE_LOGFILE"
	EnvParser    = "CALLTRACE_PARSER"
)

// File represents a config file, unset fields keep their current value
type File struct {
	Debug         *bool  `yaml:"debug" toml:"debug"`
	Verbosity     *int64 `yaml:"verbosity" toml:"verbosity"`
	Log           *bool  `yaml:"log" toml:"log"`
	LogFile       string `yaml:"logFile" toml:"logFile"`
	Color         *bool  `yaml:"color" toml:"color"`
	Parser        string `yaml:"parser" toml:"parser"`
	TypedGlobals  *bool  `yaml:"typedGlobals" toml:"typedGlobals"`
	Introspection *bool  `yaml:"introspection" toml:"introspection"`
}

// Load creates a config from defaults, the given file (if any) and the environment
func Load(ctx context.Context, location string) (*Config, error) {
	cfg := New()
	if location != "" {
		if err := cfg.LoadFile(ctx, location); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile applies a YAML or TOML config file, the format is chosen by extension
func (c *Config) LoadFile(ctx context.Context, location string) error {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", location, err)
	}
	file := &File{}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, file)
	case ".toml":
		_, err = toml.Decode(string(data), file)
	default:
		return fmt.Errorf("unsupported config format: %s", location)
	}
	if err != nil {
		return fmt.Errorf("failed to decode config %s: %w", location, err)
	}
	return c.Apply(file)
}

// Apply copies the set fields of file into the config
func (c *Config) Apply(file *File) error {
	if file.Debug != nil {
		c.SetDebug(*file.Debug)
	}
	if file.Verbosity != nil && !c.SetVerbosity(*file.Verbosity) {
		return fmt.Errorf("invalid verbosity: %d", *file.Verbosity)
	}
	if file.Log != nil {
		c.SetLog(*file.Log)
	}
	if file.LogFile != "" {
		c.LogFile = file.LogFile
	}
	if file.Color != nil {
		c.Color = *file.Color
	}
	if file.Parser != "" {
		if err := validateParser(file.Parser); err != nil {
			return err
		}
		c.Parser = file.Parser
	}
	if file.TypedGlobals != nil {
		c.TypedGlobals = *file.TypedGlobals
	}
	if file.Introspection != nil {
		c.Introspection = *file.Introspection
	}
	return nil
}

// LoadEnv applies CALLTRACE_* environment variables
func (c *Config) LoadEnv() error {
	if value, ok := os.LookupEnv(EnvDebug); ok {
		flag, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDebug, err)
		}
		c.SetDebug(flag)
	}
	if value, ok := os.LookupEnv(EnvVerbosity); ok {
		level, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvVerbosity, err)
		}
		if !c.SetVerbosity(level) {
			return fmt.Errorf("invalid %s: %d", EnvVerbosity, level)
		}
	}
	if value, ok := os.LookupEnv(EnvLog); ok {
		flag, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLog, err)
		}
		c.SetLog(flag)
	}
	if value := os.Getenv(EnvLogFile); value != "" {
		c.LogFile = value
	}
	if value := os.Getenv(EnvParser); value != "" {
		if err := validateParser(value); err != nil {
			return err
		}
		c.Parser = value
	}
	return nil
}

func validateParser(name string) error {
	switch name {
	case ParserAST, ParserTreeSitter:
		return nil
	}
	return fmt.Errorf("unsupported parser: %s", name)
}
