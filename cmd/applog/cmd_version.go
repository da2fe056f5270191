package main

import (
	"fmt"
	"io"
	"runtime"

	"applogs/internal/logger"
)

// version is replaced at build time with -ldflags "-X main.version=...".
var version = "unreleased"

// printVersion writes the CLI version to w. Verbose output adds the Go
// toolchain and the line format this build writes.
func printVersion(w io.Writer, verbose bool) {
	_, _ = fmt.Fprintf(w, "applog %s\n", version)
	if verbose {
		_, _ = fmt.Fprintf(w, "go: %s\n", runtime.Version())
		_, _ = fmt.Fprintf(w, "format: %s\n", logger.LineFormat)
	}
}
