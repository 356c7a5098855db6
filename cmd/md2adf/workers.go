package main

import (
	"errors"
	"fmt"
	"runtime"
)

// Worker sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent conversions.
	MaxWorkers = 8
)

// ErrInvalidWorkerCount indicates a --workers value out of range.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// resolveWorkers determines the number of concurrent conversions.
// Priority: explicit flag > GOMAXPROCS-based calculation.
func resolveWorkers(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	return min(max(runtime.GOMAXPROCS(0), MinWorkers), MaxWorkers)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
