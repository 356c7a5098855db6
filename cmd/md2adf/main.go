package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	md2adf "github.com/alnah/go-md2adf"
	"github.com/alnah/go-md2adf/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Parse flags first to get verbose; runMain reports parse errors.
	verbose := false
	if flags, _, err := parseFlags(os.Args[1:]); err == nil {
		verbose = flags.verbose
	}

	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args[1:], DefaultEnv()))
}

// runMain parses args, runs the conversion and returns the process exit code.
func runMain(args []string, env *Environment) int {
	flags, inputs, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}

	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "md2adf %s\n", Version)
		return ExitSuccess
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	registry := md2adf.DefaultRegistry()
	if err := runConvert(ctx, inputs, flags, registry, env); err != nil {
		fmt.Fprintln(env.Stderr, err.Error()+hintFor(err, registry))
		return exitCodeFor(err)
	}

	return ExitSuccess
}

// hintFor returns the actionable hint for err, or "".
func hintFor(err error, registry *md2adf.Registry) string {
	switch {
	case errors.Is(err, ErrConfigNotFound):
		return hints.ForConfigNotFound(md2adf.ConfigFileNames)
	case errors.Is(err, md2adf.ErrUnknownPlugin):
		return hints.ForUnknownPlugin(registry.RemarkNames(), registry.RehypeNames())
	case errors.Is(err, md2adf.ErrUnknownLanguage):
		return hints.ForUnknownLanguage()
	case errors.Is(err, ErrNoInput):
		return hints.ForNoInput()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
