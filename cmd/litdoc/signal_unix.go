//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals stop a run, including a watch loop, gracefully.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
