//go:build windows

package main

import "os"

// shutdownSignals stop a run gracefully. SIGTERM does not exist on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
