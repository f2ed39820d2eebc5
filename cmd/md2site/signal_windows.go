//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// interruptContext is canceled on Ctrl-C. Windows has no SIGTERM.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
