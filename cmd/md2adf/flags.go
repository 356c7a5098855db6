package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage indicates invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// cliFlags holds all command-line flags.
type cliFlags struct {
	config       string
	output       string
	codeLanguage string
	workers      int
	plugins      bool
	quiet        bool
	verbose      bool
	version      bool
	help         bool
}

// parseFlags parses command-line flags and returns positional args.
// args excludes the program name.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2adf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &cliFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Conversion flags
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.StringVarP(&f.codeLanguage, "code-language", "l", "", "language attribute for code blocks")
	fs.BoolVar(&f.plugins, "plugins", false, "print the resolved plugin configuration and exit")

	// Output control
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if f.quiet && f.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}

	return f, fs.Args(), nil
}
