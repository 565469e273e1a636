//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext returns a context that is canceled when an interrupt
// signal is received. Windows has no SIGTERM.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
