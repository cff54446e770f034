//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext returns the viewer's lifetime context. It ends on Ctrl-C,
// which runView treats like closing the window.
// Windows has no SIGTERM; closing the console delivers os.Interrupt.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
