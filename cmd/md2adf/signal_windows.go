//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext cancels the conversion context on Ctrl+C.
// Windows delivers no SIGTERM or SIGHUP to console programs.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
