// Package main is the entry point for the keyview editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/keyview/internal/app"
	"github.com/dshills/keyview/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cliOptions holds the parsed command line.
type cliOptions struct {
	configPath  string
	logLevel    string
	logFile     string
	showVersion bool
	showHelp    bool
	path        string
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "keyview: %v\n", err)
		return 1
	}

	if opts.showHelp {
		return 0
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "keyview %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	appOpts, err := loadOptions(opts)
	if err != nil {
		fmt.Fprintf(stderr, "keyview: %v\n", err)
		return 1
	}

	application, err := app.New(appOpts)
	if err != nil {
		fmt.Fprintf(stderr, "keyview: %v\n", err)
		return 1
	}
	defer application.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	go func() {
		if _, ok := <-signals; ok {
			application.Shutdown()
		}
	}()

	if err := application.Run(context.Background()); err != nil {
		// The stack trace goes to the log file only.
		var perr *app.RecoveredPanicError
		if errors.As(err, &perr) {
			fmt.Fprintf(stderr, "keyview: %s\n", perr.Summary())
		} else {
			fmt.Fprintf(stderr, "keyview: %v\n", err)
		}
		return 1
	}

	return 0
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("keyview", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFile, "log-file", "", "Write the session log to this file")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&opts.showHelp, "help", false, "Show help message")
	fs.BoolVar(&opts.showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "keyview - modal terminal text viewer\n\n")
		fmt.Fprintf(out, "Usage: keyview [options] [file]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nKeys:\n")
		fmt.Fprintf(out, "  Normal mode: h j k l or arrows move, i inserts, q quits\n")
		fmt.Fprintf(out, "  Insert mode: type text, Enter splits the line, Esc returns to normal\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			opts.showHelp = true
			return opts, nil
		}
		return opts, err
	}

	if opts.showHelp {
		fs.Usage()
		return opts, nil
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.path = fs.Arg(0)
	default:
		return opts, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}

	return opts, nil
}

// loadOptions layers the config file, the environment and the flags into
// application options.
func loadOptions(opts cliOptions) (app.Options, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return app.Options{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return app.Options{}, err
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if err := cfg.Validate(); err != nil {
		return app.Options{}, err
	}

	theme, err := cfg.Theme.StatusTheme()
	if err != nil {
		return app.Options{}, err
	}
	level, _ := app.ParseLogLevel(cfg.Log.Level)

	return app.Options{
		Path:     opts.path,
		LogLevel: level,
		LogFile:  cfg.Log.File,
		Theme:    &theme,
	}, nil
}
