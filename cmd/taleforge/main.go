// Package main is the entry point for the Taleforge story tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/taleforge/internal/app"
	"github.com/dshills/taleforge/internal/config"
	"github.com/dshills/taleforge/internal/nlp"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
		os.Exit(1)
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool
	var listModels bool
	var writeConfig bool

	flag.StringVar(&opts.ConfigPath, "config", config.DefaultConfigFile, "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", config.DefaultConfigFile, "Path to configuration file (shorthand)")
	flag.StringVar(&opts.SecretsPath, "secrets", config.DefaultSecretsFile, "Path to API key file")
	flag.StringVar(&opts.DBPath, "db", "", "Path to the story database")
	flag.StringVar(&opts.Model, "model", "", "Text-generation model to use")
	flag.StringVar(&opts.Model, "m", "", "Text-generation model to use (shorthand)")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.Debug, "d", false, "Enable debug logging (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&listModels, "list-models", false, "List the supported models and exit")
	flag.BoolVar(&writeConfig, "write-config", false, "Write default config files and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Taleforge - interactive AI storyteller\n\n")
		fmt.Fprintf(os.Stderr, "Usage: taleforge [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  taleforge                        Start with the configured model\n")
		fmt.Fprintf(os.Stderr, "  taleforge -m gpt-4o-mini         Override the model for this run\n")
		fmt.Fprintf(os.Stderr, "  taleforge -write-config          Create taleforge.toml and secrets.toml\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Taleforge %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if listModels {
		for _, name := range nlp.ModelNames() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	if writeConfig {
		if err := config.WriteDefaults(opts.ConfigPath, opts.SecretsPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s and %s\n", opts.ConfigPath, opts.SecretsPath)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}
