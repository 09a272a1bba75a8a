package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/viant/calltrace"
	"github.com/viant/calltrace/config"
)

var (
	configURL string // YAML or TOML config file
	logLevel  string // Diagnostics log level
	verbosity int    // Frame detail tier
	debug     bool   // Trace tracer internals
	logging   bool   // Duplicate trace lines to the log file
	logFile   string // Log file location
	parser    string // Source parser backend
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "calltrace",
	Short: "Traces a sample call and prints the call stack",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := loadConfig(cmd)
		if err != nil {
			logrus.Fatalf("unable to load config; %v", err)
		}
		tracer, err := calltrace.New(calltrace.WithConfig(cfg))
		if err != nil {
			logrus.Fatalf("unable to create tracer; %v", err)
		}
		defer tracer.Close()
		calltrace.SetDefault(tracer)

		logrus.Infof("Executing sample code with verbosity=%d, debug=%v, log=%v, logfile=%s",
			cfg.Verbosity(), cfg.Debug(), cfg.Logging(), cfg.LogFile)
		calltrace.Sample(tracer)
		logrus.Info("Execution completed")
	},
}

// loadConfig merges defaults, the config file, the environment and explicitly set flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(context.Background(), configURL)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("verbosity") && !cfg.SetVerbosity(verbosity) {
		logrus.Fatalf("Invalid verbosity: %d", verbosity)
	}
	if flags.Changed("debug") {
		cfg.SetDebug(debug)
	}
	if flags.Changed("log") {
		cfg.SetLog(logging)
	}
	if flags.Changed("logfile") {
		cfg.LogFile = logFile
	}
	if flags.Changed("parser") {
		cfg.Parser = parser
	}
	return cfg, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&configURL, "config", "", "YAML or TOML config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.Flags().IntVar(&verbosity, "verbosity", 0, "Frame detail tier (0-3)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Trace tracer internals")
	rootCmd.Flags().BoolVar(&logging, "log", true, "Duplicate trace lines to the log file")
	rootCmd.Flags().StringVar(&logFile, "logfile", config.DefaultLogFile, "Log file location")
	rootCmd.Flags().StringVar(&parser, "parser", config.ParserAST, "Source parser backend (ast, tree-sitter)")
}
