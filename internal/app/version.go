package app

import (
	"fmt"
	"io"
)

// Version is the application version, overridden at build time via
// -ldflags "-X github.com/primecalc/primecalc/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether the arguments request the version.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "primecalc %s\n", Version)
}
