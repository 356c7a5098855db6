package main

import (
	"errors"
	"os"

	md2adf "github.com/alnah/go-md2adf"
)

// Exit codes for md2adf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or plugin setup
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrOutputConflict) ||
		errors.Is(err, md2adf.ErrConfigLoad) ||
		errors.Is(err, md2adf.ErrInvalidConfig) ||
		errors.Is(err, md2adf.ErrUnknownPlugin) ||
		errors.Is(err, md2adf.ErrInvalidPluginEntry) ||
		errors.Is(err, md2adf.ErrPluginAttach) ||
		errors.Is(err, md2adf.ErrUnknownLanguage) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
